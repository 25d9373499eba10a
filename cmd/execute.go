package cmd

import (
	"os"

	"github.com/ComedicChimera/olive"

	"sysc/build"
	"sysc/common"
	"sysc/report"
)

// logLevels maps the log level selector values to their reporter constants.
var logLevels = map[string]int{
	"silent":  report.LogLevelSilent,
	"error":   report.LogLevelError,
	"warn":    report.LogLevelWarn,
	"verbose": report.LogLevelVerbose,
}

// Execute is the main entry point for the `sysc` CLI utility.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("sysc", "sysc is a tool for building Sysc projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	buildCmd := cli.AddSubcommand("build", "compile a project or source file", true)
	buildCmd.AddPrimaryArg("path", "the path to the project directory or root file", true)
	buildCmd.AddStringArg("profile", "p", "the name of the profile to build", false)

	checkCmd := cli.AddSubcommand("check", "parse and resolve a project without building it", true)
	checkCmd.AddPrimaryArg("path", "the path to the project directory or root file", true)
	checkCmd.AddStringArg("profile", "p", "the name of the profile to check", false)

	cli.AddSubcommand("version", "print the Sysc version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.ReportFatal(err.Error())
	}

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	// Code generation is not wired in yet, so `build` stops where `check`
	// does: after the front end has run to completion.
	case "build", "check":
		execBuildCommand(subResult, result.Arguments["loglevel"].(string))
	case "version":
		report.DisplayInfoMessage("Sysc Version", common.SyscVersion)
	}
}

// execBuildCommand executes the build and check subcommands and handles all
// errors.  The primary argument is either a root source file or a project
// directory holding a manifest whose selected profile names the root file.
func execBuildCommand(result *olive.ArgParseResult, logLevel string) {
	report.InitReporter(logLevels[logLevel])

	path, _ := result.PrimaryArg()

	finfo, err := os.Stat(path)
	if err != nil {
		report.ReportFatal("unable to access `%s`: %s", path, err.Error())
	}

	rootPath := path
	if finfo.IsDir() {
		man, err := build.LoadManifest(path)
		if err != nil {
			report.ReportFatal(err.Error())
		}

		profileName := ""
		if arg, ok := result.Arguments["profile"]; ok {
			profileName = arg.(string)
		}

		prof, err := man.SelectProfile(profileName)
		if err != nil {
			report.ReportFatal(err.Error())
		}

		rootPath = prof.Root
	}

	c := build.NewCompiler(rootPath)
	if c.Analyze() {
		report.ReportFinished(len(c.Reader().Files))
	} else {
		report.ReportAborted()
	}
}
