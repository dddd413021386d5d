package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/amitgilad3/confinode"
	"github.com/amitgilad3/confinode/description"
	"github.com/amitgilad3/confinode/gateway"
	"github.com/amitgilad3/confinode/internal/render"
	"github.com/amitgilad3/confinode/logging"
)

const envPrefix = "CONFINODE"

// Flag names, also the viper keys.
const (
	flagName       = "name"
	flagStopDir    = "stop-dir"
	flagBaseDir    = "base-dir"
	flagModulePath = "module-path"
	flagNoCache    = "no-cache"
	flagAsync      = "async"
	flagFormat     = "format"
	flagLogLevel   = "log-level"
	flagLogFormat  = "log-format"
	flagStats      = "stats"
)

// app carries what every subcommand needs. The gateway is swapped in tests.
type app struct {
	v       *viper.Viper
	gateway gateway.Directory
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(gateway.OS())
}

func newRootCmdWith(dir gateway.Directory) *cobra.Command {
	a := &app{v: viper.New(), gateway: dir}

	root := &cobra.Command{
		Use:   "confinode",
		Short: "Find and load application configuration files",
		Long: `confinode looks for the configuration of an application the way the
application itself would: from a starting directory up to a stop directory,
trying package.json, .<name>rc, .<name>rc.<ext> and <name>.config.<ext> in
every directory on the way.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String(flagName, "", "application name (required)")
	flags.String(flagStopDir, "", "highest directory to search (default: home directory)")
	flags.String(flagBaseDir, "", "directory relative paths resolve against (default: working directory)")
	flags.StringSlice(flagModulePath, nil, "directory to look up module names in (repeatable)")
	flags.Bool(flagNoCache, false, "disable the listing and result caches")
	flags.Bool(flagAsync, false, "use the non-blocking driver")
	flags.String(flagFormat, string(render.FormatYAML), "output format: yaml, json or text")
	flags.String(flagLogLevel, "warn", "log level: trace, info, warn or error")
	flags.String(flagLogFormat, "text", "log format: text or json")
	flags.Bool(flagStats, false, "print filesystem request counts to stderr")

	_ = a.v.BindPFlags(flags)
	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	root.AddCommand(newSearchCmd(a))
	root.AddCommand(newLoadCmd(a))
	root.AddCommand(newLoadersCmd())
	return root
}

// session is one configured engine plus its optional request counters.
type session struct {
	engine  *confinode.Confinode[any]
	metrics *prometheus.Registry
	async   bool
	format  render.Format
}

func (a *app) newSession(stderr io.Writer) (*session, error) {
	name := a.v.GetString(flagName)
	if name == "" {
		return nil, fmt.Errorf("--%s is required", flagName)
	}

	format, err := render.ParseFormat(a.v.GetString(flagFormat))
	if err != nil {
		return nil, err
	}

	logger, err := a.logger(stderr)
	if err != nil {
		return nil, err
	}

	s := &session{async: a.v.GetBool(flagAsync), format: format}
	dir := a.gateway
	if a.v.GetBool(flagStats) {
		s.metrics = prometheus.NewRegistry()
		dir = gateway.Instrument(dir, s.metrics)
	}

	opts := []confinode.Option{
		confinode.WithGateway(dir),
		confinode.WithLogger(logger),
		confinode.WithCache(!a.v.GetBool(flagNoCache)),
	}
	if a.v.IsSet(flagStopDir) {
		opts = append(opts, confinode.WithStopDirectory(a.v.GetString(flagStopDir)))
	}
	if base := a.v.GetString(flagBaseDir); base != "" {
		opts = append(opts, confinode.WithBaseDirectory(base))
	}
	if paths := a.v.GetStringSlice(flagModulePath); len(paths) > 0 {
		opts = append(opts, confinode.WithModulePaths(paths...))
	}

	s.engine = confinode.New(name, description.Any(), opts...)
	return s, nil
}

func (a *app) logger(w io.Writer) (logging.Logger, error) {
	level, err := logging.ParseLevel(a.v.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}

	switch a.v.GetString(flagLogFormat) {
	case "text":
		return logging.New(w, level), nil
	case "json":
		return logging.Hclog(hclog.New(&hclog.LoggerOptions{
			Name:       "confinode",
			Level:      hclogLevel(level),
			Output:     w,
			JSONFormat: true,
		})), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", a.v.GetString(flagLogFormat))
	}
}

func hclogLevel(l logging.Level) hclog.Level {
	switch l {
	case logging.LevelTrace:
		return hclog.Trace
	case logging.LevelInfo:
		return hclog.Info
	case logging.LevelWarning:
		return hclog.Warn
	default:
		return hclog.Error
	}
}

// finish renders result, or reports it missing, then prints request counts.
func (s *session) finish(cmd *cobra.Command, result *confinode.Result[any]) error {
	defer s.printStats(cmd.ErrOrStderr())

	if result == nil {
		return &ExitError{Code: 1, Err: errNotFound}
	}
	return render.Result(cmd.OutOrStdout(), result, render.WithFormat(s.format), render.WithSources())
}

func (s *session) printStats(w io.Writer) {
	if s.metrics == nil {
		return
	}
	families, err := s.metrics.Gather()
	if err != nil {
		fmt.Fprintf(w, "stats unavailable: %v\n", err)
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			op := ""
			for _, lp := range m.GetLabel() {
				if lp.GetName() == "op" {
					op = lp.GetValue()
				}
			}
			fmt.Fprintf(w, "%s{op=%q} %g\n", mf.GetName(), op, m.GetCounter().GetValue())
		}
	}
}
