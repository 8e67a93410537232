package main

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/robaho/fixed"
	"github.com/x448/float16"

	"github.com/avdva/floatbits"
	"github.com/avdva/floatbits/radix"
)

const (
	methodDirect = "direct"
	methodArith  = "arith"
)

type encodeCmd struct {
	Value     float64 `arg:"" help:"Decimal value. Use -- before negative values."`
	Precision string  `short:"p" default:"single" env:"FLOATBITS_PRECISION" help:"Precision: half, single or double."`
	Method    string  `short:"m" default:"both" enum:"direct,arith,both" help:"Strategy: direct, arith or both."`
	Rounding  string  `short:"r" default:"even" enum:"truncate,even" help:"Arithmetic strategy rounding for values wider than the precision."`
}

func (c *encodeCmd) Run(a *app) error {
	p, err := floatbits.ParsePrecision(c.Precision)
	if err != nil {
		return err
	}
	r, err := floatbits.ParseRounding(c.Rounding)
	if err != nil {
		return err
	}
	a.log.Debug("encoding", "value", c.Value, "precision", p, "method", c.Method, "rounding", r)

	var direct, arith string
	if c.Method != methodArith {
		direct = encodeDirect(c.Value, p)
		writeLine(a.out, "direct", direct)
	}
	if c.Method != methodDirect {
		arith, err = floatbits.EncodeArithmeticAs(arithmeticInput(c.Value, p), p, floatbits.WithRounding(r))
		if err != nil {
			a.log.Warn("arithmetic encoding failed", "value", c.Value, "precision", p, "error", err)
			if direct == "" {
				return err
			}
			writeLine(a.out, "arith", err.Error())
		} else {
			writeLine(a.out, "arith", arith)
		}
	}
	if direct != "" && arith != "" && direct != arith {
		a.log.Warn("strategies disagree", "value", c.Value, "direct", direct, "arith", arith)
	}
	bits := direct
	if bits == "" {
		bits = arith
	}
	return writeDetails(a, bits, p)
}

type decodeCmd struct {
	Bits      string `arg:"" help:"Bit string: sign, exponent, fraction. Missing trailing bits are zeros."`
	Precision string `short:"p" default:"single" env:"FLOATBITS_PRECISION" help:"Precision: half, single or double."`
	Method    string `short:"m" default:"both" enum:"direct,arith,both" help:"Strategy: direct, arith or both."`
}

func (c *decodeCmd) Run(a *app) error {
	p, err := floatbits.ParsePrecision(c.Precision)
	if err != nil {
		return err
	}
	if err := floatbits.Validate(c.Bits); err != nil {
		return fmt.Errorf("bad bit string: %w", err)
	}
	if len(c.Bits) != p.Bits() {
		a.log.Info("bit string length differs from precision width", "len", len(c.Bits), "width", p.Bits())
	}
	a.log.Debug("decoding", "bits", c.Bits, "precision", p, "method", c.Method)

	if c.Method != methodArith {
		v, err := decodeDirect(c.Bits, p)
		if err != nil {
			return err
		}
		writeLine(a.out, "direct", formatValue(v, p))
	}
	if c.Method != methodDirect {
		v, err := floatbits.DecodeArithmeticAs(c.Bits, p)
		if err != nil {
			a.log.Warn("arithmetic decoding failed", "bits", c.Bits, "precision", p, "error", err)
			if c.Method == methodArith {
				return err
			}
			writeLine(a.out, "arith", err.Error())
		} else {
			writeLine(a.out, "arith", formatValue(v, p))
		}
	}
	return writeDetails(a, c.Bits, p)
}

type radixCmd struct {
	Digits string `arg:"" help:"Digits 0-9 and a-z."`
	From   int    `short:"f" default:"10" help:"Input base."`
	To     int    `short:"t" default:"16" help:"Output base."`
}

func (c *radixCmd) Run(a *app) error {
	res, err := radix.Convert(c.Digits, c.From, c.To)
	if err != nil {
		return err
	}
	a.log.Debug("converted", "digits", c.Digits, "from", c.From, "to", c.To, "result", res)
	_, err = fmt.Fprintln(a.out, res)
	return err
}

type sampleCmd struct {
	Value  float64 `default:"11.98" help:"Floating-point value to walk through."`
	Number string  `default:"10000" help:"Decimal integer to print in every base."`
}

func (c *sampleCmd) Run(a *app) error {
	for _, p := range []floatbits.Precision{floatbits.Single, floatbits.Double} {
		if err := sampleFloat(a, c.Value, p); err != nil {
			return err
		}
		fmt.Fprintln(a.out)
	}
	for base := radix.MinBase; base <= radix.MaxBase; base++ {
		res, err := radix.Convert(c.Number, 10, base)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s to %d => %s\n", c.Number, base, res)
	}
	return nil
}

// sampleFloat encodes and recovers v with both strategies, failing on any disagreement.
func sampleFloat(a *app, v float64, p floatbits.Precision) error {
	if p == floatbits.Single {
		v = float64(float32(v))
	}
	direct := encodeDirect(v, p)
	recovered, err := decodeDirect(direct, p)
	if err != nil {
		return err
	}
	arith, err := floatbits.EncodeArithmeticAs(v, p)
	if err != nil {
		return err
	}
	arithRecovered, err := floatbits.DecodeArithmeticAs(arith, p)
	if err != nil {
		return err
	}

	name := p.String()
	fmt.Fprintf(a.out, "%-18s %s\n", name, exactString(direct, p))
	fmt.Fprintf(a.out, "%-6s direct    => %s\n", name, direct)
	fmt.Fprintf(a.out, "%-6s recover   => %s\n", name, exactString(encodeDirect(recovered, p), p))
	fmt.Fprintf(a.out, "%-6s arith     => %s\n", name, arith)
	fmt.Fprintf(a.out, "%-6s recover   => %s\n", name, exactString(encodeDirect(arithRecovered, p), p))

	switch {
	case recovered != v:
		return fmt.Errorf("%v: direct strategy recovered %v from %v", p, recovered, v)
	case direct != arith:
		return fmt.Errorf("%v: strategies disagree on %v: %s != %s", p, v, direct, arith)
	case arithRecovered != v:
		return fmt.Errorf("%v: arithmetic strategy recovered %v from %v", p, arithRecovered, v)
	}
	a.log.Info("sample verified", "value", v, "precision", p)
	return nil
}

func encodeDirect(v float64, p floatbits.Precision) string {
	switch p {
	case floatbits.Half:
		return floatbits.EncodeDirectHalf(float16.Fromfloat32(float32(v)))
	case floatbits.Single:
		return floatbits.EncodeDirect(float32(v))
	default:
		return floatbits.EncodeDirect(v)
	}
}

// arithmeticInput returns the value the arithmetic strategy narrows from.
// Half values reach the direct strategy through float32, so both start from the same float32.
func arithmeticInput(v float64, p floatbits.Precision) float64 {
	if p == floatbits.Half {
		return float64(float32(v))
	}
	return v
}

func decodeDirect(bits string, p floatbits.Precision) (float64, error) {
	switch p {
	case floatbits.Half:
		v, err := floatbits.DecodeDirectHalf(bits)
		return float64(v.Float32()), err
	case floatbits.Single:
		v, err := floatbits.DecodeDirect[float32](bits)
		return float64(v), err
	default:
		return floatbits.DecodeDirect[float64](bits)
	}
}

func formatValue(v float64, p floatbits.Precision) string {
	if p == floatbits.Double {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strconv.FormatFloat(v, 'g', -1, 32)
}

func exactString(bits string, p floatbits.Precision) string {
	d, err := floatbits.Exact(bits, p)
	if err != nil {
		return err.Error()
	}
	return d.StringFixed(20)
}

func writeLine(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%-8s %s\n", label, value)
}

// writeDetails prints fields, the exact decimal value and a 7-place fixed-point preview of bits.
func writeDetails(a *app, bits string, p floatbits.Precision) error {
	f, err := floatbits.ParseFields(bits, p)
	if err != nil {
		return err
	}
	writeLine(a.out, "fields", fmt.Sprintf("s=%d e=%d (E=%d) f=%#x", f.Sign, f.Exponent, f.Unbiased(), f.Fraction))
	d, err := f.Decimal()
	if err != nil {
		a.log.Debug("no exact value", "bits", bits, "error", err)
		return nil
	}
	writeLine(a.out, "exact", d.String())
	v, err := decodeDirect(bits, p)
	if err != nil {
		return err
	}
	if math.Abs(v) >= fixed.MAX {
		a.log.Debug("no fixed-point preview", "value", v, "max", fixed.MAX)
		return nil
	}
	writeLine(a.out, "fixed", fixed.NewF(v).String())
	return nil
}
