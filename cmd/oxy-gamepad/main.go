// Package main is the oxy-gamepad command: fly a scene view's camera with a game controller.
package main

import (
	"fmt"
	"os"
	"runtime"
)

func init() {
	// GLFW window and joystick calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "oxy-gamepad:", err)
		os.Exit(1)
	}
}
