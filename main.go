package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tdewolff/argp"

	"PaintBoard/internal/config"
	"PaintBoard/internal/export"
	paintnet "PaintBoard/internal/net"
	"PaintBoard/internal/state"
	"PaintBoard/internal/ui"
)

// Paint opens the paint board, optionally sharing it with viewers on the LAN.
type Paint struct {
	Config string `short:"c" desc:"Config file (TOML)"`
	Share  bool   `short:"s" desc:"Share the board with viewers on the local network"`
	Open   string `short:"o" desc:"Board file to open"`
}

// Join watches a board shared by another PaintBoard.
type Join struct {
	Config  string `short:"c" desc:"Config file (TOML)"`
	Timeout int    `default:"3" desc:"Seconds to browse for a board when no URL is given"`
	URL     string `index:"0" desc:"Share URL, e.g. ws://192.168.1.20:8888/ws"`
}

// Render exports a saved board without opening a window.
type Render struct {
	Output   string  `short:"o" desc:"Output file (.png, .svg or .pdf)"`
	Scale    float64 `default:"2" desc:"Pixels per surface unit for PNG"`
	Template string  `short:"t" desc:"Template image drawn beneath the strokes"`
	Input    string  `index:"0" desc:"Board file"`
}

func main() {
	root := argp.NewCmd(&Paint{}, "PaintBoard: finger-paint on template images")
	root.AddCmd(&Join{}, "join", "Watch a shared board")
	root.AddCmd(&Render{}, "render", "Export a saved board to PNG, SVG or PDF")
	root.Parse()
	root.PrintHelp()
}

func (cmd *Paint) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if cmd.Share {
		cfg.Share.Enabled = true
	}

	c := state.NewCanvas(cfg.Bounds(), cfg.Surface.StrokeWidth)
	if cmd.Open != "" {
		b, err := export.LoadFile(cmd.Open)
		if err != nil {
			return err
		}
		if !b.Fits(c.Bounds()) {
			return fmt.Errorf("%s: board is %gx%g, larger than the %gx%g surface", cmd.Open, b.Width, b.Height, c.Bounds().Width, c.Bounds().Height)
		}
		c.Load(b.Strokes)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shareLink := ""
	if cfg.Share.Enabled {
		hub := paintnet.NewHub(c)
		c.OnOp = hub.Publish
		go func() {
			if err := paintnet.Serve(ctx, fmt.Sprintf(":%d", cfg.Share.Port), hub); err != nil {
				log.Printf("[share] %v", err)
			}
		}()
		if cfg.Share.Advertise {
			server, err := paintnet.Advertise(cfg.Share.Name, cfg.Share.Port)
			if err != nil {
				log.Printf("[share] %v", err)
			} else {
				defer server.Shutdown()
			}
		}
		shareLink = paintnet.SocketURL(fmt.Sprintf("%s:%d", paintnet.OutgoingIP(), cfg.Share.Port))
		log.Printf("[share] viewers can join at %s", shareLink)
	}

	ui.RunPaint(ui.NewApp(), cfg, c, shareLink)
	return nil
}

func (cmd *Join) Run() error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	c := state.NewCanvas(cfg.Bounds(), cfg.Surface.StrokeWidth)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ui.RunViewer(ui.NewApp(), c, func(refresh func(), status *ui.Status) {
		url := cmd.URL
		if url == "" {
			status.Set("Looking for a board...")
			found, err := paintnet.Discover(time.Duration(cmd.Timeout) * time.Second)
			if err != nil {
				status.Set(err.Error())
				return
			}
			url = found
		}
		status.Set("Watching " + url)
		if err := paintnet.Join(ctx, url, c, refresh); err != nil {
			status.Set(fmt.Sprintf("Disconnected from host: %v", err))
			return
		}
		status.Set("Host closed the board")
	})
	return nil
}

func (cmd *Render) Run() error {
	if cmd.Input == "" || cmd.Output == "" {
		return argp.ShowUsage
	}
	b, err := export.LoadFile(cmd.Input)
	if err != nil {
		return err
	}

	tmpl := cmd.Template
	if tmpl == "" {
		tmpl = b.Template
	}
	return export.RenderFile(cmd.Output, b, cmd.Scale, tmpl)
}
