package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rook-computer/cursorgen/internal/curfile"
	"github.com/rook-computer/cursorgen/internal/manifest"
)

func main() {
	manifestPath := flag.String("manifest", "", "verify the files against this manifest.txt")
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "usage: inspect [-manifest manifest.txt] file.cur...")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 && *manifestPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	files := map[string][]byte{}
	failed := false
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Println("read error:", err)
			failed = true
			continue
		}
		files[filepath.Base(path)] = data
		f, err := curfile.Decode(data)
		if err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed = true
			continue
		}
		if _, err := f.Image(); err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed = true
			continue
		}
		fmt.Printf("%s: %dx%d hotspot=(%d,%d) payload=%d bytes at %d\n",
			path, f.Width, f.Height, f.Hotspot.X, f.Hotspot.Y, len(f.Payload), f.Offset)
	}

	if *manifestPath != "" {
		raw, err := os.ReadFile(*manifestPath)
		if err != nil {
			fmt.Println("manifest read error:", err)
			os.Exit(1)
		}
		m, err := manifest.Parse(raw)
		if err != nil {
			fmt.Println("manifest error:", err)
			os.Exit(1)
		}
		if flag.NArg() == 0 {
			// Verify the whole directory the manifest lives in.
			dir := filepath.Dir(*manifestPath)
			for _, e := range m.Entries {
				if data, err := os.ReadFile(filepath.Join(dir, e.File)); err == nil {
					files[e.File] = data
				}
			}
		}
		problems := m.Verify(files)
		for _, p := range problems {
			fmt.Println(p)
		}
		if len(problems) > 0 {
			failed = true
		} else {
			fmt.Printf("manifest ok: %d files (style %s)\n", len(m.Entries), m.Style)
		}
	}

	if failed {
		os.Exit(1)
	}
}
