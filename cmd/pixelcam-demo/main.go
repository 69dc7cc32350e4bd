package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"

	"pixelcam/internal/config"
	"pixelcam/internal/game"
	"pixelcam/internal/graphics"
	"pixelcam/internal/input"
	"pixelcam/internal/window"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	spritePath := flag.String("sprite", "", "PNG to bounce around instead of the built-in sprite")
	fpsLimit := flag.Int("fps", 0, "frame rate cap, 0 for uncapped")
	vsync := flag.Bool("vsync", true, "enable vsync at startup")
	flag.Parse()

	config.SetFPSLimit(*fpsLimit)
	config.SetVSync(*vsync)

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw init: %v", err)
	}
	closer.Bind(glfw.Terminate)

	win, err := window.New(config.WindowTitle)
	if err != nil {
		closer.Fatalln("window:", err)
	}
	closer.Bind(win.Destroy)

	if err := gl.Init(); err != nil {
		closer.Fatalln("gl init:", err)
	}
	log.Printf("OpenGL %s", gl.GoStr(gl.GetString(gl.VERSION)))

	im := input.NewManager()
	im.SetKeyCallback(win.Glfw())

	// Optional sprite from disk; the scene falls back to a procedural one.
	var spriteTex uint32
	spriteSize := 0
	if *spritePath != "" {
		tex, w, h, err := graphics.LoadTexture(*spritePath)
		if err != nil {
			closer.Fatalln("load sprite:", err)
		}
		spriteTex = tex
		spriteSize = w
		if h < w {
			spriteSize = h
		}
	}

	app, err := game.NewApp(win, im, spriteTex, spriteSize)
	if err != nil {
		closer.Fatalln("app:", err)
	}

	app.Run()
	closer.Close()
}
