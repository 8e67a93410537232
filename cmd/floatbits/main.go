// Command floatbits shows IEEE-754 bit strings of floating-point values,
// computed both from memory and by arithmetic, and converts integers between bases.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// CLI defines the floatbits command-line interface.
type CLI struct {
	LogLevel  string `help:"Log level: debug, info, warn or error." default:"warn" env:"FLOATBITS_LOG_LEVEL" enum:"debug,info,warn,error"`
	LogFormat string `help:"Log format: text or json." default:"text" env:"FLOATBITS_LOG_FORMAT" enum:"text,json"`

	Encode encodeCmd `cmd:"" help:"Encode a decimal value into a bit string."`
	Decode decodeCmd `cmd:"" help:"Decode a bit string."`
	Radix  radixCmd  `cmd:"" help:"Convert an integer between bases 2 to 36."`
	Sample sampleCmd `cmd:"" help:"Walk through 11.98 as float and double, and 10000 in every base."`
}

// app is bound to every command's Run method.
type app struct {
	out io.Writer
	log *Logger
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "floatbits: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("floatbits"),
		kong.Description("Convert floating-point values to and from IEEE-754 bit strings."),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		return err
	}
	ctx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	log, err := NewLogger(stderr, cli.LogLevel, cli.LogFormat)
	if err != nil {
		return err
	}
	log.Debug("command parsed", "command", ctx.Command())
	return ctx.Run(&app{out: stdout, log: log})
}
