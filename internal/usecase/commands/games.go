package commands

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"regexp"
	"strconv"
	"strings"
	"time"

	"chanBot/internal/domain"
)

var gameBucket = Bucket{Count: 5, Interval: 30 * time.Second}

const (
	maxDice  = 1000
	maxFaces = 1_000_000
)

var (
	rollDiceRe = regexp.MustCompile(`^(\d+)?d(\d+)([+-]\d+)?$`)
	rollModRe  = regexp.MustCompile(`^[+-]?\d+$`)
)

// RollCommand entiende expresiones como `2d6+1 - d4 + 3`.
type RollCommand struct {
	rng *rand.Rand
}

func NewRollCommand(rng *rand.Rand) *RollCommand {
	return &RollCommand{rng: rng}
}

func (c *RollCommand) Name() string                   { return "roll" }
func (c *RollCommand) Permission() domain.Permissions { return domain.PermViewer }
func (c *RollCommand) Bucket() *Bucket                { b := gameBucket; return &b }

func (c *RollCommand) Execute(_ context.Context, _ *Context, args string) []string {
	if args == "" {
		roll := c.rng.IntN(20) + 1
		out := strconv.Itoa(roll)
		switch roll {
		case 20:
			out += " PogChamp"
		case 1:
			out += " NotLikeThis"
		}
		return []string{out}
	}

	sum, ok := c.evaluate(strings.Fields(args))
	if !ok {
		return nil
	}
	return []string{strconv.FormatInt(sum, 10)}
}

func (c *RollCommand) evaluate(terms []string) (int64, bool) {
	var sum int64
	ok := true
	sign := int64(1)
	for _, term := range terms {
		switch {
		case term == "+":
			sign = 1
		case term == "-":
			sign = -1
		case rollDiceRe.MatchString(term):
			m := rollDiceRe.FindStringSubmatch(term)
			count := int64(1)
			if m[1] != "" {
				n, err := strconv.ParseInt(m[1], 10, 64)
				if err != nil {
					return 0, false
				}
				count = n
			}
			faces, err := strconv.ParseInt(m[2], 10, 64)
			if err != nil || faces < 1 || faces > maxFaces || count > maxDice {
				return 0, false
			}
			var total int64
			for i := int64(0); i < count; i++ {
				total += c.rng.Int64N(faces) + 1
			}
			if m[3] != "" {
				mod, err := strconv.ParseInt(m[3], 10, 64)
				if err != nil {
					return 0, false
				}
				if total, ok = addChecked(total, mod); !ok {
					return 0, false
				}
			}
			if sum, ok = addChecked(sum, sign*total); !ok {
				return 0, false
			}
		case rollModRe.MatchString(term):
			n, err := strconv.ParseInt(term, 10, 64)
			if err != nil {
				return 0, false
			}
			// -n desborda con MinInt64
			if sign < 0 && n == math.MinInt64 {
				return 0, false
			}
			if sum, ok = addChecked(sum, sign*n); !ok {
				return 0, false
			}
		default:
			return 0, false
		}
	}
	return sum, true
}

func addChecked(a, b int64) (int64, bool) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, false
	}
	return r, true
}

type FlipCoinCommand struct {
	rng *rand.Rand
}

func NewFlipCoinCommand(rng *rand.Rand) *FlipCoinCommand {
	return &FlipCoinCommand{rng: rng}
}

func (c *FlipCoinCommand) Name() string                   { return "flipcoin" }
func (c *FlipCoinCommand) Permission() domain.Permissions { return domain.PermViewer }
func (c *FlipCoinCommand) Bucket() *Bucket                { b := gameBucket; return &b }

func (c *FlipCoinCommand) Execute(_ context.Context, _ *Context, args string) []string {
	if args == "" {
		if c.rng.IntN(2) == 0 {
			return []string{"Heads"}
		}
		return []string{"Tails"}
	}
	n, err := strconv.ParseUint(args, 10, 8)
	if err != nil {
		return nil
	}
	var b strings.Builder
	for i := uint64(0); i < n; i++ {
		if c.rng.IntN(2) == 0 {
			b.WriteByte('H')
		} else {
			b.WriteByte('T')
		}
	}
	return []string{b.String()}
}

var eightBallAnswers = []string{
	"It is certain.",
	"It is decidedly so.",
	"Without a doubt.",
	"Yes, definitely.",
	"You may rely on it.",
	"As I see it, yes.",
	"Most likely.",
	"Outlook good.",
	"Yes.",
	"Signs point to yes.",
	"Don't count on it.",
	"My reply is no.",
	"My sources say no.",
	"Outlook not so good.",
	"Very doubtful.",
}

type EightBallCommand struct {
	rng *rand.Rand
}

func NewEightBallCommand(rng *rand.Rand) *EightBallCommand {
	return &EightBallCommand{rng: rng}
}

func (c *EightBallCommand) Name() string                   { return "8ball" }
func (c *EightBallCommand) Permission() domain.Permissions { return domain.PermViewer }
func (c *EightBallCommand) Bucket() *Bucket                { b := gameBucket; return &b }

func (c *EightBallCommand) Execute(context.Context, *Context, string) []string {
	return []string{eightBallAnswers[c.rng.IntN(len(eightBallAnswers))]}
}

var numberwangAnswers = []string{
	"That's Numberwang!",
	"Das ist Nümberwang!",
	"Mmm... Yumberwang!",
	"Yes, that is a number.",
	"Yes, that is a number.",
	"Yes, that is a number.",
	"Yes, that is a number.",
	"Yes, that is a number.",
	"Yes, that is a number.",
	"Yes, that is a number.",
	"Yes, that is a number.",
	"Ja, das ist eine Nummer.",
	"Ja, das ist eine Nummer.",
	"Ja, das ist eine Nummer.",
	"Ja, das ist eine Nummer.",
}

type NumberwangCommand struct {
	rng *rand.Rand
}

func NewNumberwangCommand(rng *rand.Rand) *NumberwangCommand {
	return &NumberwangCommand{rng: rng}
}

func (c *NumberwangCommand) Name() string                   { return "numberwang" }
func (c *NumberwangCommand) Permission() domain.Permissions { return domain.PermViewer }
func (c *NumberwangCommand) Bucket() *Bucket                { b := gameBucket; return &b }

func (c *NumberwangCommand) Execute(_ context.Context, _ *Context, args string) []string {
	if _, err := strconv.ParseFloat(args, 32); err != nil {
		return nil
	}
	return []string{numberwangAnswers[c.rng.IntN(len(numberwangAnswers))]}
}

// TCountCommand da a cada login un número fijo entre 0 y 100.
type TCountCommand struct{}

func NewTCountCommand() *TCountCommand {
	return &TCountCommand{}
}

func (c *TCountCommand) Name() string                   { return "tcount" }
func (c *TCountCommand) Permission() domain.Permissions { return domain.PermViewer }
func (c *TCountCommand) Bucket() *Bucket                { return nil }

func (c *TCountCommand) Execute(_ context.Context, cmdCtx *Context, _ string) []string {
	caller := cmdCtx.Caller
	return []string{fmt.Sprintf("%s: %d/100", caller.Display(), oneAtATime(caller.Login)%101)}
}

// oneAtATime is Jenkins' one-at-a-time hash.
func oneAtATime(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h += uint64(s[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}
