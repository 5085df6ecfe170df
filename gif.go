package asciimage

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"time"
)

var errNoFrames = errors.New("gif has no frames")

/*
PlayGIF draws each frame of a gif to w (usually os.Stdout) as text art.
Terminal codes reposition the cursor at the beginning of each frame, and
frame delays, disposal methods and the loop count are respected. A gif that
loops forever plays until ctx is done.
*/
func PlayGIF(ctx context.Context, w io.Writer, giff *gif.GIF, conv *Converter, term Terminal) error {
	if len(giff.Image) == 0 {
		return errNoFrames
	}
	if term == nil {
		term = &Xterm{Writer: w}
	}
	term.ShowCursor(false)
	defer term.ShowCursor(true)

	bounds := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	if bounds.Empty() {
		bounds = giff.Image[0].Bounds()
	}
	screen := image.NewRGBA(bounds)

	// LoopCount -1 shows the frames once, N > 0 restarts them N times.
	plays := giff.LoopCount + 1
	if giff.LoopCount < 0 {
		plays = 1
	}
	for c := 0; giff.LoopCount == 0 || c < plays; c++ {
		for i, frame := range giff.Image {
			delay := time.NewTimer(frameDelay(giff, i))
			disposal := frameDisposal(giff, i)

			var previous *image.RGBA
			if disposal == gif.DisposalPrevious {
				previous = image.NewRGBA(screen.Bounds())
				copy(previous.Pix, screen.Pix)
			}
			draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

			grid := conv.Convert(screen)
			if err := WriteText(w, grid); err != nil {
				delay.Stop()
				return err
			}

			select {
			case <-ctx.Done():
				delay.Stop()
				return ctx.Err()
			case <-delay.C:
			}

			// Leave the final frame on screen.
			if giff.LoopCount != 0 && c == plays-1 && i == len(giff.Image)-1 {
				return nil
			}
			term.ResetCursor(grid.Height)

			switch disposal {
			// Dispose background clears what was just drawn
			case gif.DisposalBackground:
				draw.Draw(screen, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
			// Dispose previous essentially means draw then undo
			case gif.DisposalPrevious:
				screen = previous
			}
		}
	}
	return nil
}

func frameDelay(giff *gif.GIF, i int) time.Duration {
	if i >= len(giff.Delay) {
		return 0
	}
	return time.Duration(giff.Delay[i]) * time.Second / 100
}

func frameDisposal(giff *gif.GIF, i int) byte {
	if i >= len(giff.Disposal) {
		return gif.DisposalNone
	}
	return giff.Disposal[i]
}
