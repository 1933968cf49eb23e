// Command cli is the privshim admin tool. It installs and removes the
// front-end symlinks, reports installation health, and shows which
// privilege tool and editor the shim would use on this host.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"privshim/internal/executor"
	"privshim/internal/linkfarm"
	"privshim/pkg/redirect"
)

const version = "1.0.0"

func main() {
	binDir := flag.String("bindir", "/usr/local/libexec/privshim", "Directory the front-end links live in")
	shimPath := flag.String("shim", "", "Path to the canonical shim binary (default: <bindir>/privshim)")
	statePath := flag.String("state", "", "Path to the state file (default: <bindir>/links.state.json)")
	manifestPath := flag.String("manifest", "", "Optional YAML manifest describing the installation")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "privshim-cli v%s - privshim installation tool\n\n", version)
		fmt.Fprintf(os.Stderr, "Usage: privshim-cli [options] <command>\n\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  install [name...]   Create front-end links (default: sudo visudo sudoedit)\n")
		fmt.Fprintf(os.Stderr, "  remove <name...>    Remove front-end links\n")
		fmt.Fprintf(os.Stderr, "  status              List installed links and verify them\n")
		fmt.Fprintf(os.Stderr, "  doctor              Report the target tool and editor the shim would use\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	mf := linkfarm.DefaultManifest()
	if *manifestPath != "" {
		loaded, err := linkfarm.LoadManifest(*manifestPath)
		if err != nil {
			fatal("manifest: %v", err)
		}
		mf = loaded
	}
	if mf.BinDir == "" {
		mf.BinDir = *binDir
	}
	if mf.Shim == "" {
		mf.Shim = *shimPath
	}
	if mf.Shim == "" {
		mf.Shim = filepath.Join(mf.BinDir, redirect.CanonicalName)
	}
	state := *statePath
	if state == "" {
		state = filepath.Join(mf.BinDir, "links.state.json")
	}

	logger := log.New(os.Stdout, "[privshim-cli] ", log.LstdFlags|log.Lmsgprefix)

	command := flag.Arg(0)
	switch command {
	case "install":
		mgr := newManager(mf, state, logger)
		names := flag.Args()[1:]
		if len(names) == 0 {
			names = mf.Links
		}
		if err := mgr.Install(names); err != nil {
			fatal("install: %v", err)
		}
		fmt.Printf("Installed %s in %s\n", strings.Join(names, ", "), mf.BinDir)
	case "remove":
		if flag.NArg() < 2 {
			fatal("remove requires at least one link name")
		}
		mgr := newManager(mf, state, logger)
		if err := mgr.Remove(flag.Args()[1:]); err != nil {
			fatal("remove: %v", err)
		}
		fmt.Println("Removed")
	case "status":
		mgr := newManager(mf, state, logger)
		if err := status(mgr); err != nil {
			fatal("status: %v", err)
		}
	case "doctor":
		doctor(mf)
	default:
		fatal("unknown command: %s", command)
	}
}

func newManager(mf *linkfarm.Manifest, statePath string, logger *log.Logger) *linkfarm.Manager {
	mgr, err := linkfarm.NewManager(linkfarm.Config{
		BinDir:    mf.BinDir,
		ShimPath:  mf.Shim,
		StatePath: statePath,
		Logger:    logger,
	})
	if err != nil {
		fatal("%v", err)
	}
	if err := mgr.Start(); err != nil {
		fatal("%v", err)
	}
	return mgr
}

func status(mgr *linkfarm.Manager) error {
	links := mgr.Links()
	if len(links) == 0 {
		fmt.Println("No links installed")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTARGET\tCREATED")
	for _, l := range links {
		fmt.Fprintf(w, "%s\t%s\t%s\n", l.Name, l.Target, l.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	w.Flush()

	issues, err := mgr.Verify()
	if err != nil {
		return err
	}
	for _, issue := range issues {
		fmt.Printf("issue: %s\n", issue)
	}
	if len(issues) == 0 {
		fmt.Println("All links verified")
	}
	return nil
}

func doctor(mf *linkfarm.Manifest) {
	exec := &executor.Spawn{SkipDir: mf.BinDir}

	target, path, err := redirect.Detect(exec.LookPath)
	if err != nil {
		fmt.Printf("target tool: NOT FOUND (%v)\n", err)
	} else {
		fmt.Printf("target tool: %s (%s)\n", target.Name, path)
	}

	editor := redirect.Editor(os.Environ())
	fmt.Printf("sudoedit editor: %s\n", strings.Join(editor, " "))
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "privshim-cli: %s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
