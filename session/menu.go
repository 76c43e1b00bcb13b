package session

import (
	"context"

	"go.uber.org/zap"

	"github.com/lixenwraith/segmole/board"
	"github.com/lixenwraith/segmole/game"
	"github.com/lixenwraith/segmole/segment"
)

// chase runs the boot animation once around the display
func (r *Runner) chase(ctx context.Context) error {
	for _, f := range segment.ChaseFrames() {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.show(segment.Single(f.Cell, f.Seg))
		r.sleep(chaseFrame)
	}
	r.show(segment.Blank)
	return nil
}

// marquee scrolls text with a cycling LED until accept returns true for a key
func (r *Runner) marquee(ctx context.Context, text string, accept func(board.Key) bool) (board.Key, error) {
	hueBase := 0
	for offset := 0; ; offset = (offset + 1) % segment.MarqueeLength(text) {
		r.show(segment.RenderText(text, offset))

		for j := 0; j < pollsPerFrame; j++ {
			if err := ctx.Err(); err != nil {
				return board.KeyNone, err
			}
			board.HSVToRGB(hueBase+j*huePollStep, idleSaturation, idleValue).Set(r.board.LED)
			r.sleep(pollInterval)

			if k := r.board.Keys.ReadKey(); k != board.KeyNone && accept(k) {
				board.Off.Set(r.board.LED)
				r.show(segment.Blank)
				return k, nil
			}
		}
		hueBase = (hueBase + hueFrameStep) % 360
	}
}

func (r *Runner) welcome(ctx context.Context) error {
	_, err := r.marquee(ctx, WelcomeText, func(board.Key) bool { return true })
	return err
}

// SelectMode waits for '1', '2' or '3', other keys are ignored
// There is no timeout, only ctx ends the wait
func (r *Runner) SelectMode(ctx context.Context) (game.Mode, error) {
	k, err := r.marquee(ctx, ChooseText, func(k board.Key) bool {
		_, ok := game.ModeForKey(k)
		return ok
	})
	if err != nil {
		return 0, err
	}
	mode, _ := game.ModeForKey(k)
	r.log.Debug("mode selected", zap.Stringer("mode", mode))
	return mode, nil
}
