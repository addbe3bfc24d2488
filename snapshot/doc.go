// Package snapshot renders effects offscreen and composites them into
// still images.
//
// Each effect is mounted on a gg canvas driven by a manual frame clock,
// advanced a fixed number of frames, then composited over a background
// the way a browser would paint its canvas element: the element's
// blur() filter, opacity and mix-blend-mode are read from the
// renderer's canvas style and applied with gg.
//
//	snap, err := snapshot.Render(ctx, snapshot.DefaultOptions(), texture.NewGrain())
//	if err != nil {
//		return err
//	}
//	defer snap.Close()
//	return snap.SavePNG("grain.png")
package snapshot
