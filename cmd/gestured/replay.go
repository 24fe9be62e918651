package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"gestured/internal/gesture"
)

// replayRecord is one line of a replay file. A record is a frame unless it
// sets key or app. A click record without touches repeats the previous
// frame's contacts with the button pressed.
//
//	{"t":0.00,"touches":[{"id":1,"x":0.4,"y":0.5}]}
//	{"t":0.12,"touches":[]}
//	{"t":0.30,"click":true}
//	{"t":0.31,"key":true}
//	{"t":0.32,"app":"terminal"}
type replayRecord struct {
	T       float64       `json:"t"`
	Touches []replayTouch `json:"touches,omitempty"`
	Click   bool          `json:"click,omitempty"`
	Key     bool          `json:"key,omitempty"`
	App     *string       `json:"app,omitempty"`
}

type replayTouch struct {
	ID    int32   `json:"id"`
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Major float32 `json:"major,omitempty"`
	Minor float32 `json:"minor,omitempty"`
	State string  `json:"state,omitempty"`
}

func (rt replayTouch) sample() (gesture.TouchSample, error) {
	state := gesture.StateTouching
	if rt.State != "" {
		s, ok := gesture.ParseTouchState(rt.State)
		if !ok {
			return gesture.TouchSample{}, fmt.Errorf("unknown touch state %q", rt.State)
		}
		state = s
	}
	return gesture.TouchSample{
		PathIndex: rt.ID,
		X:         rt.X,
		Y:         rt.Y,
		MajorAxis: rt.Major,
		MinorAxis: rt.Minor,
		State:     state,
	}, nil
}

// replayPrinter is the executor used during replay. It writes one line per
// dispatched action, stamped with the current record's time.
type replayPrinter struct {
	w   io.Writer
	t   float64
	ids []gesture.ID
}

func (p *replayPrinter) Execute(id gesture.ID) {
	p.ids = append(p.ids, id)
	fmt.Fprintf(p.w, "%8.3f  %s\n", p.t, id)
}

// replay feeds every record from r through eng and returns the dispatched
// gesture IDs in order. The engine must have been built with p as its
// executor.
func replay(r io.Reader, eng *gesture.Engine, p *replayPrinter) ([]gesture.ID, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	line := 0
	var last []gesture.TouchSample
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		var rec replayRecord
		if err := json.Unmarshal([]byte(text), &rec); err != nil {
			return p.ids, fmt.Errorf("line %d: %w", line, err)
		}
		p.t = rec.T

		switch {
		case rec.App != nil:
			eng.SetFrontmostApp(*rec.App)

		case rec.Key:
			eng.NoteKeystroke(rec.T)

		default:
			frame := gesture.Frame{Timestamp: rec.T, Click: rec.Click}
			if rec.Click && rec.Touches == nil {
				frame.Touches = held(last)
			}
			for _, rt := range rec.Touches {
				s, err := rt.sample()
				if err != nil {
					return p.ids, fmt.Errorf("line %d: %w", line, err)
				}
				frame.Touches = append(frame.Touches, s)
			}
			last = frame.Touches

			res := eng.ProcessFrame(frame)
			if res.ClickSuppressed {
				fmt.Fprintf(p.w, "%8.3f  (click suppressed)\n", rec.T)
			}
			if id, ok := eng.ConsumeLiftEvent(); ok {
				p.Execute(id)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return p.ids, fmt.Errorf("read replay: %w", err)
	}
	return p.ids, nil
}

// held copies touches as they look in a later report with no movement.
func held(touches []gesture.TouchSample) []gesture.TouchSample {
	out := make([]gesture.TouchSample, len(touches))
	for i, t := range touches {
		if t.State == gesture.StateMakeTouch {
			t.State = gesture.StateTouching
		}
		out[i] = t
	}
	return out
}

var replayCmd = &cobra.Command{
	Use:   "replay FILE",
	Short: "Feed a recorded touch timeline through the engine",
	Long: `Reads JSON lines of touch frames, clicks, keystrokes and app changes and
prints every gesture the engine dispatches. Use "-" to read stdin. The config
file supplies sensitivity, enablement and on-lift settings; commands are not run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := newConfigSource(cmd)
		if err != nil {
			return err
		}
		cfg, err := src.load()
		if err != nil {
			return err
		}

		in := cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open replay: %w", err)
			}
			defer f.Close()
			in = f
		}

		p := &replayPrinter{w: cmd.OutOrStdout()}
		eng := gesture.New(gesture.Config{
			Settings:       cfg.EngineSettings(),
			Executor:       p,
			Logger:         loggerFor(cfg),
			TypingCooldown: cfg.TypingCooldown(),
		})
		ids, err := replay(in, eng, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d gestures\n", len(ids))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}
