// Package cli binds command-line options to flags, environment variables and
// a configuration file.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Opt is a single command-line option
type Opt struct {
	DestP   interface{} // pointer to the destination
	Flag    string
	Default interface{}
	Desc    string
}

// NewOpt creates a new command line option.
func NewOpt(destP interface{}, flag string, dflt interface{}, desc string) Opt {
	return Opt{
		DestP:   destP,
		Flag:    flag,
		Default: dflt,
		Desc:    desc,
	}
}

// Program parses CLI options
type Program struct {
	// Name is the name of the program in help usage and the env var prefix.
	Name  string
	Short string

	// Opts are the command line/env var options to the program
	Opts []Opt

	// Load runs after the flags are parsed and before option values are
	// resolved. Values it stores in the destinations act as defaults that
	// environment variables and explicit flags override.
	Load func() error

	// Run is invoked by cobra on execute.
	Run func() error
}

// NewCommand creates a new cobra command to be executed that respects env vars.
//
// Uses the upper-case version of the program's name as a prefix
// to all environment variables.
func NewCommand(v *viper.Viper, p *Program) *cobra.Command {
	cmd := &cobra.Command{
		Use:          p.Name,
		Short:        p.Short,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			if p.Load != nil {
				if err := p.Load(); err != nil {
					return err
				}
			}
			if err := Resolve(v, p.Opts); err != nil {
				return err
			}
			return p.Run()
		},
	}

	v.SetEnvPrefix(strings.ToUpper(p.Name))
	v.AutomaticEnv()
	// This normalizes "-" to an underscore in env names.
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	BindOptions(v, cmd.Flags(), p.Opts)

	return cmd
}

// BindOptions adds opts to fs and registers them with v.
//
// Flags keep their own storage; destinations are only written by Resolve.
func BindOptions(v *viper.Viper, fs *pflag.FlagSet, opts []Opt) {
	for _, o := range opts {
		switch o.DestP.(type) {
		case *string:
			var d string
			if o.Default != nil {
				d = o.Default.(string)
			}
			fs.String(o.Flag, d, o.Desc)
		case *int:
			var d int
			if o.Default != nil {
				d = o.Default.(int)
			}
			fs.Int(o.Flag, d, o.Desc)
		case *zapcore.Level:
			var d zapcore.Level
			if o.Default != nil {
				d = o.Default.(zapcore.Level)
			}
			lv := levelValue(d)
			fs.Var(&lv, o.Flag, o.Desc)
		default:
			panic(fmt.Errorf("unknown destination type %T", o.DestP))
		}
		if err := v.BindPFlag(o.Flag, fs.Lookup(o.Flag)); err != nil {
			panic(err)
		}
	}
}

// Resolve writes the effective value of every option into its destination.
//
// An explicitly set flag wins over the environment, which wins over the value
// already held by the destination.
func Resolve(v *viper.Viper, opts []Opt) error {
	for _, o := range opts {
		switch destP := o.DestP.(type) {
		case *string:
			v.SetDefault(o.Flag, *destP)
			*destP = v.GetString(o.Flag)
		case *int:
			v.SetDefault(o.Flag, *destP)
			*destP = v.GetInt(o.Flag)
		case *zapcore.Level:
			v.SetDefault(o.Flag, destP.String())
			if err := (*levelValue)(destP).Set(v.GetString(o.Flag)); err != nil {
				return fmt.Errorf("invalid %s: %w", o.Flag, err)
			}
		default:
			return fmt.Errorf("unknown destination type %T", o.DestP)
		}
	}
	return nil
}
