package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/aretext/wcxlate/eol"
	"github.com/aretext/wcxlate/install"
	"github.com/aretext/wcxlate/keyword"
	"github.com/aretext/wcxlate/listing"
	"github.com/aretext/wcxlate/specialfile"
	"github.com/aretext/wcxlate/translate"
	"github.com/aretext/wcxlate/wcconfig"
)

func eolStyleBytes(name string) ([]byte, error) {
	switch name {
	case "lf":
		return eol.LF.Bytes(), nil
	case "cr":
		return eol.CR.Bytes(), nil
	case "crlf":
		return eol.CRLF.Bytes(), nil
	case "":
		return nil, nil
	default:
		return nil, errors.Errorf("unrecognized eol style %q", name)
	}
}

func keywordValuesFromFlags() (keyword.Values, error) {
	vals := keyword.Values{
		Revision: *revFlag,
		URL:      *urlFlag,
		Author:   *authorFlag,
	}
	if *dateFlag != "" {
		t, err := time.Parse(time.RFC3339, *dateFlag)
		if err != nil {
			return keyword.Values{}, errors.Wrap(err, "time.Parse -date")
		}
		vals.Date = t
	}
	return vals, nil
}

// resolvedOptions merges the loaded config with flag overrides (a
// non-empty -keywords or -eol takes precedence; Repair is on if either the
// config or -repair enables it) and builds the translate.Options for the
// full expand/contract pipeline.
func resolvedOptions(cfg wcconfig.Config, expand bool) (translate.Options, error) {
	keywordSpec := cfg.KeywordSpec
	if *keywordsFlag != "" {
		keywordSpec = *keywordsFlag
	}

	eolStyle := cfg.EOLStyle
	if *eolFlag != "" {
		eolStyle = *eolFlag
	}
	eolOut, err := eolStyleBytes(eolStyle)
	if err != nil {
		return translate.Options{}, err
	}

	vals, err := keywordValuesFromFlags()
	if err != nil {
		return translate.Options{}, err
	}

	direction := translate.Contract
	if expand {
		direction = translate.Expand
	}

	return translate.Options{
		EOLOut:    eolOut,
		Repair:    cfg.Repair || *repairFlag,
		Keywords:  keyword.Build(keywordSpec, vals),
		Direction: direction,
	}, nil
}

func runTranslateFile(args []string, cfg wcconfig.Config, expand bool) error {
	if len(args) != 2 {
		return errors.New("usage: expand|contract <src> <dst>")
	}
	src, dst := args[0], args[1]

	opts, err := resolvedOptions(cfg, expand)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "os.Open")
	}
	defer in.Close()

	staged, err := install.Begin(dst, install.Options{})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			if cancelErr := staged.Cancel(); cancelErr != nil {
				log.Printf("wcxlate: cleanup of staged file failed: %s\n", cancelErr)
			}
		}
	}()

	if err := translate.Stream(in, staged, opts); err != nil {
		return err
	}
	if err := staged.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func runEOL(args []string, cfg wcconfig.Config) error {
	if len(args) != 3 {
		return errors.New("usage: eol <lf|cr|crlf> <src> <dst>")
	}
	style, src, dst := args[0], args[1], args[2]

	eolOut, err := eolStyleBytes(style)
	if err != nil {
		return err
	}
	if eolOut == nil {
		return errors.Errorf("eol style must be one of lf, cr, crlf, got %q", style)
	}

	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "os.Open")
	}
	defer in.Close()

	staged, err := install.Begin(dst, install.Options{})
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			if cancelErr := staged.Cancel(); cancelErr != nil {
				log.Printf("wcxlate: cleanup of staged file failed: %s\n", cancelErr)
			}
		}
	}()

	opts := translate.Options{EOLOut: eolOut, Repair: cfg.Repair || *repairFlag}
	if err := translate.Stream(in, staged, opts); err != nil {
		return err
	}
	if err := staged.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func runDetranslateSpecial(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: detranslate-special <src> <dst>")
	}
	return specialfile.Detranslate(args[0], args[1])
}

func runCreateSpecial(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: create-special <src> <dst>")
	}
	return specialfile.Create(args[0], args[1])
}

func runList(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: list <root>")
	}
	root := args[0]

	cb := listing.CallbackFunc(func(e listing.Entry) error {
		fmt.Printf("%s\t%s\t%d\n", e.Path, kindLabel(e.Kind), e.Size)
		return nil
	})
	return listing.Walk(rootContext(), root, listing.Options{}, cb)
}

func rootContext() context.Context {
	return context.Background()
}

func kindLabel(k listing.EntryKind) string {
	switch k {
	case listing.EntryDir:
		return "dir"
	case listing.EntrySymlink:
		return "symlink"
	default:
		return "file"
	}
}
