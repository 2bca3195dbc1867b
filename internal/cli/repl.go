package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/bigntt/internal/format"
	"github.com/agbru/bigntt/internal/mul"
	"github.com/agbru/bigntt/internal/ubig"
	"github.com/agbru/bigntt/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Backend is the multiplier used by mul and square.
	Backend string
	// Timeout bounds each multiplication.
	Timeout time.Duration
	// HexOutput displays values in hexadecimal.
	HexOutput bool
}

// REPL is an interactive session around a single current value, edited
// through its bit and word views and multiplied with registry backends.
type REPL struct {
	config   REPLConfig
	registry *mul.Registry
	value    *ubig.UBig
	in       io.Reader
	out      io.Writer
}

// NewREPL creates a REPL whose current value is zero.
func NewREPL(registry *mul.Registry, config REPLConfig) *REPL {
	if config.Backend == "" {
		config.Backend = "ntt"
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &REPL{
		config:   config,
		registry: registry,
		value:    new(ubig.UBig),
		in:       os.Stdin,
		out:      os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Value returns the current value.
func (r *REPL) Value() *ubig.UBig { return r.value }

// Start reads commands until "exit" or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorSuccess()+"n> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && strings.TrimSpace(input) != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			r.fail(fmt.Errorf("read error: %w", err))
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorInfo(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s       %sbigntt - interactive bit and word editor%s           %s║%s\n",
		ui.ColorInfo(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorInfo(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorInfo(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	cmd := func(name, help string) {
		fmt.Fprintf(r.out, "  %s%-22s%s - %s\n", ui.ColorWarning(), name, ui.ColorReset(), help)
	}
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	cmd("let <n>", "Replace the current value (0x, 0o, 0b prefixes accepted)")
	cmd("bit <i> [= 0|1]", "Read or write one bit")
	cmd("bits [slice] [= 0|1]", "Read a bit slice or fill it")
	cmd("word <i> [= v]", "Read or write one 64-bit word")
	cmd("words [slice] [= v,...]", "Read or assign words")
	cmd("del bit|bits|word|words", "Delete an index or a slice, shifting higher positions down")
	cmd("mul <n>", "Multiply the current value by n")
	cmd("square", "Square the current value")
	cmd("backend <name>", "Change backend ("+strings.Join(r.registry.List(), ", ")+")")
	cmd("hex", "Toggle hexadecimal display")
	cmd("show", "Display the current value")
	cmd("help", "Display this help")
	cmd("exit / quit", "Exit interactive mode")
}

func (r *REPL) fail(err error) {
	fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorError(), err, ui.ColorReset())
}

// processCommand executes one command line. It returns false on exit.
func (r *REPL) processCommand(input string) bool {
	lhs, rhs, assign := strings.Cut(input, "=")
	parts := strings.Fields(lhs)
	if len(parts) == 0 {
		r.fail(errors.New("missing command before '='"))
		return true
	}
	cmd, args := strings.ToLower(parts[0]), parts[1:]
	rhs = strings.TrimSpace(rhs)

	var err error
	switch cmd {
	case "let", "set":
		err = r.cmdLet(args)
	case "bit":
		err = r.cmdBit(args, rhs, assign)
	case "bits":
		err = r.cmdBits(args, rhs, assign)
	case "word":
		err = r.cmdWord(args, rhs, assign)
	case "words":
		err = r.cmdWords(args, rhs, assign)
	case "del":
		err = r.cmdDel(args)
	case "mul":
		err = r.cmdMul(args)
	case "square", "sq":
		err = r.multiply("square", nil)
	case "backend", "b":
		err = r.cmdBackend(args)
	case "hex":
		r.config.HexOutput = !r.config.HexOutput
		fmt.Fprintf(r.out, "Hexadecimal display: %s%v%s\n", ui.ColorSuccess(), r.config.HexOutput, ui.ColorReset())
	case "show", "status", "st":
		r.show()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorSuccess(), ui.ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorError(), cmd, ui.ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorWarning(), ui.ColorReset())
	}
	if err != nil {
		r.fail(err)
	}
	return true
}

func (r *REPL) show() {
	value, _ := FormatValue(r.value, OutputConfig{Hex: r.config.HexOutput})
	fmt.Fprintf(r.out, "n = %s%s%s  (%d bits, %d words, backend %s)\n",
		ui.ColorSuccess(), value, ui.ColorReset(), r.value.BitLen(), r.value.Words().Len(), r.config.Backend)
}

func oneArg(args []string, usage string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s", usage)
	}
	return args[0], nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid index: %s", s)
	}
	return i, nil
}

// sliceArg parses an optional slice argument; no argument selects everything.
func sliceArg(args []string) (ubig.Slice, error) {
	switch len(args) {
	case 0:
		return ubig.All(), nil
	case 1:
		return ubig.ParseSlice(args[0])
	default:
		return ubig.Slice{}, errors.New("expected at most one slice")
	}
}

func parseBit(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "true":
		return true, nil
	case "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bit: %q (want 0 or 1)", s)
	}
}

func (r *REPL) cmdLet(args []string) error {
	s, err := oneArg(args, "let <n>")
	if err != nil {
		return err
	}
	v, err := ubig.Parse(s, 0)
	if err != nil {
		return err
	}
	r.value = v
	r.show()
	return nil
}

func (r *REPL) cmdBit(args []string, rhs string, assign bool) error {
	s, err := oneArg(args, "bit <i> [= 0|1]")
	if err != nil {
		return err
	}
	i, err := parseIndex(s)
	if err != nil {
		return err
	}
	if !assign {
		b, err := r.value.BitAt(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "n[%d] = %v\n", i, b)
		return nil
	}
	b, err := parseBit(rhs)
	if err != nil {
		return err
	}
	if err := r.value.SetBitAt(i, b); err != nil {
		return err
	}
	r.show()
	return nil
}

func (r *REPL) cmdBits(args []string, rhs string, assign bool) error {
	s, err := sliceArg(args)
	if err != nil {
		return err
	}
	if !assign {
		v, _ := FormatValue(r.value.BitSlice(s), OutputConfig{Hex: r.config.HexOutput})
		fmt.Fprintf(r.out, "n[%s] = %s\n", s, v)
		return nil
	}
	b, err := parseBit(rhs)
	if err != nil {
		return err
	}
	r.value.SetBitSlice(s, b)
	r.show()
	return nil
}

func (r *REPL) cmdWord(args []string, rhs string, assign bool) error {
	s, err := oneArg(args, "word <i> [= v]")
	if err != nil {
		return err
	}
	i, err := parseIndex(s)
	if err != nil {
		return err
	}
	words := r.value.Words()
	if !assign {
		w, err := words.At(i)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "words[%d] = %#x\n", i, w)
		return nil
	}
	v, err := strconv.ParseUint(rhs, 0, 64)
	if err != nil {
		return fmt.Errorf("invalid word: %q", rhs)
	}
	if err := words.SetAt(i, v); err != nil {
		return err
	}
	r.show()
	return nil
}

func (r *REPL) cmdWords(args []string, rhs string, assign bool) error {
	s, err := sliceArg(args)
	if err != nil {
		return err
	}
	words := r.value.Words()
	if !assign {
		fmt.Fprintf(r.out, "words[%s] = ", s)
		DisplayWords(words.Slice(s), r.config.HexOutput, r.out)
		return nil
	}
	var vals []uint64
	for _, f := range strings.FieldsFunc(rhs, func(c rune) bool { return c == ',' || c == ' ' || c == '[' || c == ']' }) {
		v, err := strconv.ParseUint(f, 0, 64)
		if err != nil {
			return fmt.Errorf("invalid word: %q", f)
		}
		vals = append(vals, v)
	}
	if err := words.SetSlice(s, vals); err != nil {
		return err
	}
	r.show()
	return nil
}

func (r *REPL) cmdDel(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: del bit|word <i> or del bits|words <slice>")
	}
	kind := strings.ToLower(args[0])
	var err error
	switch kind {
	case "bit", "word":
		var i int
		if i, err = parseIndex(args[1]); err != nil {
			return err
		}
		if kind == "bit" {
			err = r.value.DeleteBitAt(i)
		} else {
			err = r.value.Words().DeleteAt(i)
		}
	case "bits", "words":
		var s ubig.Slice
		if s, err = ubig.ParseSlice(args[1]); err != nil {
			return err
		}
		if kind == "bits" {
			r.value.DeleteBitSlice(s)
		} else {
			r.value.Words().DeleteSlice(s)
		}
	default:
		return fmt.Errorf("cannot delete %q", args[0])
	}
	if err != nil {
		return err
	}
	r.show()
	return nil
}

func (r *REPL) cmdMul(args []string) error {
	s, err := oneArg(args, "mul <n>")
	if err != nil {
		return err
	}
	v, err := ubig.Parse(s, 0)
	if err != nil {
		return err
	}
	return r.multiply("mul", v)
}

// multiply replaces the current value with value·y, or value² when y is nil.
func (r *REPL) multiply(op string, y *ubig.UBig) error {
	m, err := r.registry.Get(r.config.Backend)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	start := time.Now()
	var res *ubig.UBig
	if y == nil {
		res, err = m.Square(ctx, r.value)
	} else {
		res, err = m.Multiply(ctx, r.value, y)
	}
	if err != nil {
		return err
	}
	r.value = res
	fmt.Fprintf(r.out, "%s in %s%s%s\n", op, ui.ColorWarning(), format.FormatExecutionDuration(time.Since(start)), ui.ColorReset())
	r.show()
	return nil
}

func (r *REPL) cmdBackend(args []string) error {
	name, err := oneArg(args, "backend <name>")
	if err != nil {
		return err
	}
	name = strings.ToLower(name)
	if _, err := r.registry.Get(name); err != nil {
		return fmt.Errorf("%w (available: %s)", err, strings.Join(r.registry.List(), ", "))
	}
	r.config.Backend = name
	fmt.Fprintf(r.out, "Backend changed to: %s%s%s\n", ui.ColorSuccess(), name, ui.ColorReset())
	return nil
}
