package app

import (
	"fmt"

	"github.com/bvisness/flowwire/app/core"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func Main() {
	settings, err := LoadSettings(GetSettingsPath())
	if err != nil {
		fmt.Printf("Settings: %v\n", err)
	}
	if settings.Debug {
		core.Logf = func(format string, args ...any) {
			fmt.Printf(format+"\n", args...)
		}
	}

	editor, err := NewEditor(settings, RealInputProvider{})
	if err != nil {
		fmt.Printf("%v; using the default accept rule\n", err)
		settings.AcceptRule = ""
		editor, err = NewEditor(settings, RealInputProvider{})
		if err != nil {
			panic(err)
		}
	}

	windowWidth, windowHeight := int32(settings.WindowWidth), int32(settings.WindowHeight)
	rl.InitWindow(windowWidth, windowHeight, "Flowwire")
	defer rl.CloseWindow()

	monitorWidth := rl.GetMonitorWidth(rl.GetCurrentMonitor())
	monitorHeight := rl.GetMonitorHeight(rl.GetCurrentMonitor())
	rl.SetWindowPosition(monitorWidth/2-int(windowWidth)/2, monitorHeight/2-int(windowHeight)/2)
	rl.SetTargetFPS(int32(rl.GetMonitorRefreshRate(rl.GetCurrentMonitor())))

	editor.AddNode(DefaultKinds[0], rl.Vector2{X: 120, Y: 160})
	editor.AddNode(DefaultKinds[1], rl.Vector2{X: 420, Y: 220})

	rl.SetExitKey(0)
	for !rl.WindowShouldClose() {
		frame(editor)
	}
}

func frame(e *Editor) {
	e.Update()

	rl.BeginDrawing()
	rl.ClearBackground(Night)
	e.Draw()
	rl.EndDrawing()
}
