// Command wcxlate translates working-copy file content to and from its
// canonical repository form: EOL normalization, keyword substitution, and
// symlink special-file handling.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/aretext/wcxlate/wcconfig"
)

var (
	keywordsFlag = flag.String("keywords", "", "keyword spec, e.g. \"Revision Date Author URL Id\" (overrides config)")
	revFlag      = flag.String("rev", "", "revision value for keyword substitution")
	urlFlag      = flag.String("url", "", "URL value for keyword substitution")
	dateFlag     = flag.String("date", "", "RFC3339 date value for keyword substitution")
	authorFlag   = flag.String("author", "", "author value for keyword substitution")
	eolFlag      = flag.String("eol", "", "output EOL style: lf, cr, or crlf (overrides config)")
	repairFlag   = flag.Bool("repair", false, "suppress inconsistent-eol errors instead of failing")
	configFlag   = flag.String("config", "", "path to an explicit config file, overriding the XDG-located default")
	noconfigFlag = flag.Bool("noconfig", false, "force default configuration, ignoring any on-disk config file")
)

func main() {
	flag.Usage = printUsage
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if flag.NArg() < 1 {
		printUsage()
		os.Exit(2)
	}

	cfg, err := wcconfig.LoadOrCreateConfig(*configFlag, *noconfigFlag)
	if err != nil {
		exitWithError(err)
	}

	args := flag.Args()
	cmd, rest := args[0], args[1:]

	var runErr error
	switch cmd {
	case "expand":
		runErr = runTranslateFile(rest, cfg, true)
	case "contract":
		runErr = runTranslateFile(rest, cfg, false)
	case "eol":
		runErr = runEOL(rest, cfg)
	case "detranslate-special":
		runErr = runDetranslateSpecial(rest)
	case "create-special":
		runErr = runCreateSpecial(rest)
	case "list":
		runErr = runList(rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		printUsage()
		os.Exit(2)
	}

	if runErr != nil {
		exitWithError(runErr)
	}
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s [options...] <command> [args...]\n\n", os.Args[0])
	fmt.Fprintf(f, "Commands:\n")
	fmt.Fprintf(f, "  expand <src> <dst>               full pipeline, repository to working copy\n")
	fmt.Fprintf(f, "  contract <src> <dst>              full pipeline, working copy to repository\n")
	fmt.Fprintf(f, "  eol <style> <src> <dst>           EOL-only normalization\n")
	fmt.Fprintf(f, "  detranslate-special <src> <dst>   symlink to descriptor file\n")
	fmt.Fprintf(f, "  create-special <src> <dst>        descriptor file to symlink\n")
	fmt.Fprintf(f, "  list <root>                       walk a directory tree\n\n")
	fmt.Fprintf(f, "Options:\n")
	flag.PrintDefaults()
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "error: %s\n", err)
	os.Exit(1)
}
