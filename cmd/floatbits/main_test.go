package main

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdva/floatbits"
	"github.com/avdva/floatbits/radix"
)

func runArgs(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err = run(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestEncode(t *testing.T) {
	a := assert.New(t)
	out, _, err := runArgs(t, "encode", "11.98")
	require.NoError(t, err)
	a.Contains(out, "direct   01000001001111111010111000010100\n")
	a.Contains(out, "arith    01000001001111111010111000010100\n")
	a.Contains(out, "fields   s=0 e=130 (E=3) f=0x3fae14\n")
	a.Contains(out, "exact    11.979999542236328125\n")
	a.Contains(out, "fixed    11.97999")

	out, _, err = runArgs(t, "encode", "-p", "double", "-m", "arith", "11.98")
	require.NoError(t, err)
	a.Contains(out, "arith    0100000000100111111101011100001010001111010111000010100011110110\n")
	a.NotContains(out, "direct")

	out, _, err = runArgs(t, "encode", "--precision=half", "--", "-2.5")
	require.NoError(t, err)
	a.Contains(out, "direct   1100000100000000\n")
	a.Contains(out, "arith    1100000100000000\n")
}

func TestEncodeRounding(t *testing.T) {
	a := assert.New(t)
	out, errOut, err := runArgs(t, "encode", "-r", "truncate", "0.1")
	require.NoError(t, err)
	a.Contains(out, "direct   00111101110011001100110011001101\n")
	a.Contains(out, "arith    00111101110011001100110011001100\n")
	a.Contains(errOut, "strategies disagree")
}

func TestEncodeRange(t *testing.T) {
	a := assert.New(t)
	out, errOut, err := runArgs(t, "encode", "1e39")
	require.NoError(t, err)
	a.Contains(out, "direct   01111111100000000000000000000000\n")
	a.Contains(out, "exponent out of range")
	a.Contains(errOut, "arithmetic encoding failed")

	_, _, err = runArgs(t, "encode", "-m", "arith", "1e39")
	a.True(errors.Is(err, floatbits.ErrRange))
}

func TestEncodeFixedPreview(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		args  []string
		exact string
	}{
		{[]string{"encode", "1e30"}, "exact    1000000015047466219876688855040\n"},
		{[]string{"encode", "-p", "double", "1e300"}, "exact    1000000000000000052504760255204420248704468581108159154915854115511802457988908195786371375080447864043704443832883878176942523235360430575644792184786706982848387200926575803737830233794788090059368953234970799945081119038967640880074652742780142494579258788820056842838115669472196386865459400540160\n"},
		{[]string{"encode", "-p", "double", "--", "-5e11"}, "exact    -500000000000\n"},
	}
	for i, test := range tests {
		t.Run(fmt.Sprintf("%d", i), func(t *testing.T) {
			out, _, err := runArgs(t, test.args...)
			require.NoError(t, err)
			a.Contains(out, test.exact)
			a.NotContains(out, "fixed")
		})
	}

	out, _, err := runArgs(t, "encode", "-p", "double", "--", "-5e10")
	require.NoError(t, err)
	a.Contains(out, "fixed    -50000000000\n")
}

func TestEncodeHalfAgrees(t *testing.T) {
	a := assert.New(t)
	out, errOut, err := runArgs(t, "encode", "-p", "half", "1.0004882812509094947017729282379150390625")
	require.NoError(t, err)
	a.Contains(out, "direct   0011110000000000\n")
	a.Contains(out, "arith    0011110000000000\n")
	a.NotContains(errOut, "strategies disagree")
}

func TestDecode(t *testing.T) {
	a := assert.New(t)
	out, _, err := runArgs(t, "decode", "01000001001111111010111000010100")
	require.NoError(t, err)
	a.Contains(out, "direct   11.98\n")
	a.Contains(out, "arith    11.98\n")
	a.Contains(out, "exact    11.979999542236328125\n")

	out, errOut, err := runArgs(t, "--log-level=info", "decode", "-p", "64", "0100000000100111111101011100001010001111010111000010100011110110")
	require.NoError(t, err)
	a.Contains(out, "direct   11.98\n")
	a.NotContains(errOut, "length differs")

	out, errOut, err = runArgs(t, "--log-level=info", "decode", "0100000100111111")
	require.NoError(t, err)
	a.Contains(out, "direct   11.9375\n")
	a.Contains(errOut, "length differs")

	out, _, err = runArgs(t, "decode", "00000000000000000000000000000001")
	require.NoError(t, err)
	a.Contains(out, "direct   1e-45\n")
	a.Contains(out, "subnormal")

	_, _, err = runArgs(t, "decode", "-m", "arith", "00000000000000000000000000000001")
	a.True(errors.Is(err, floatbits.ErrRange))

	_, _, err = runArgs(t, "decode", "01x")
	a.True(errors.Is(err, floatbits.ErrMalformed))

	_, _, err = runArgs(t, "decode", "-p", "quad", "01")
	a.True(errors.Is(err, floatbits.ErrPrecision))
}

func TestRadix(t *testing.T) {
	a := assert.New(t)
	out, _, err := runArgs(t, "radix", "10000")
	require.NoError(t, err)
	a.Equal("2710\n", out)

	out, _, err = runArgs(t, "radix", "10000", "--to", "2")
	require.NoError(t, err)
	a.Equal("10011100010000\n", out)

	out, _, err = runArgs(t, "radix", "-f", "16", "-t", "10", "2710")
	require.NoError(t, err)
	a.Equal("10000\n", out)

	_, _, err = runArgs(t, "radix", "10000", "--to", "40")
	a.True(errors.Is(err, radix.ErrBase))
}

func TestSample(t *testing.T) {
	a := assert.New(t)
	out, _, err := runArgs(t, "sample")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	a.Equal("single             11.97999954223632812500", lines[0])
	a.Equal("single direct    => 01000001001111111010111000010100", lines[1])
	a.Equal("single recover   => 11.97999954223632812500", lines[2])
	a.Equal("single arith     => 01000001001111111010111000010100", lines[3])
	a.Equal("single recover   => 11.97999954223632812500", lines[4])
	a.Equal("double             11.98000000000000042633", lines[6])
	a.Contains(out, "10000 to 2 => 10011100010000\n")
	a.Contains(out, "10000 to 16 => 2710\n")
	a.Contains(out, "10000 to 36 => 7ps\n")
}

func TestLogging(t *testing.T) {
	a := assert.New(t)
	_, errOut, err := runArgs(t, "--log-level=debug", "--log-format=json", "encode", "1")
	require.NoError(t, err)
	a.Contains(errOut, `"msg":"encoding"`)
	a.Contains(errOut, `"precision":"single"`)

	t.Setenv("FLOATBITS_LOG_LEVEL", "debug")
	_, errOut, err = runArgs(t, "radix", "7")
	require.NoError(t, err)
	a.Contains(errOut, "msg=converted")

	_, err = NewLogger(&bytes.Buffer{}, "loud", "text")
	a.Error(err)
	_, err = NewLogger(&bytes.Buffer{}, "info", "xml")
	a.Error(err)
}

func TestPrecisionFromEnv(t *testing.T) {
	t.Setenv("FLOATBITS_PRECISION", "double")
	out, _, err := runArgs(t, "encode", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "direct   0011111111110000000000000000000000000000000000000000000000000000\n")
}
