package main

import (
	"flag"
	"log"
	"os"

	"github.com/hashicorp/logutils"

	metagen "github.com/go-metagen/metagen"
)

const defaultWritePermission = 0644 // -rw-r--r--

type args struct {
	inputPaths  []string
	headerPath  *string
	sourcePath  *string
	logLevel    *string
}

func readArgs() *args {
	a := &args{
		headerPath: flag.String("header-output", "generated.h", "Path to write the generated header to"),
		sourcePath: flag.String("source-output", "generated.cpp", "Path to write the generated source to"),
		logLevel:   flag.String("log-level", "WARN", "Minimum log level to emit: DEBUG, WARN or ERROR"),
	}
	flag.Parse()
	a.inputPaths = flag.Args()
	return a
}

func main() {
	a := readArgs()

	log.SetOutput(&logutils.LevelFilter{
		Levels:   []logutils.LogLevel{"DEBUG", "WARN", "ERROR"},
		MinLevel: logutils.LogLevel(*a.logLevel),
		Writer:   os.Stderr,
	})

	if len(a.inputPaths) == 0 {
		log.Fatal("[ERROR] no input files given")
	}

	defer func() {
		if r := recover(); r != nil {
			log.Fatalf("[ERROR] %v", r)
		}
	}()

	var inputs [][]byte
	for _, path := range a.inputPaths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("[ERROR] reading %s: %v", path, err)
		}
		inputs = append(inputs, data)
	}

	cfg := metagen.NewConfig()
	arena := metagen.NewArena(cfg.GetInt("arena.scratch_bytes"), cfg.GetInt("arena.permanent_bytes"), cfg.GetInt("arena.scratch_bytes"))

	header, source, err := metagen.Process(inputs, arena, cfg)
	if err != nil {
		log.Printf("[WARN] %v", err)
	}

	if err := os.WriteFile(*a.headerPath, header, defaultWritePermission); err != nil {
		log.Fatalf("[ERROR] writing %s: %v", *a.headerPath, err)
	}
	if err := os.WriteFile(*a.sourcePath, source, defaultWritePermission); err != nil {
		log.Fatalf("[ERROR] writing %s: %v", *a.sourcePath, err)
	}

	log.Printf("[DEBUG] wrote %s and %s from %d input file(s)", *a.headerPath, *a.sourcePath, len(a.inputPaths))

	if err != nil {
		os.Exit(1)
	}
}
