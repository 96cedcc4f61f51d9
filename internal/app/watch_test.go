package app_test

import (
	"context"
	"iter"
	"testing"
	"testing/fstest"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/sizemap/internal/app"
	"go.trai.ch/sizemap/internal/core/ports"
	"go.uber.org/mock/gomock"
)

const bPath = "/project/B.uasset"

// expectWatch makes the mock watcher deliver events until ctx is done.
func (ta *testApp) expectWatch(ctx context.Context, events <-chan ports.WatchEvent) {
	ta.watcher.EXPECT().Start(gomock.Any(), "/project").Return(nil)
	ta.watcher.EXPECT().Stop().Return(nil)
	ta.watcher.EXPECT().Events().Return(iter.Seq[ports.WatchEvent](func(yield func(ports.WatchEvent) bool) {
		for {
			select {
			case <-ctx.Done():
				return
			case event := <-events:
				if !yield(event) {
					return
				}
			}
		}
	}))
	ta.detector.EXPECT().Prime([]string{bPath}).Return(nil)
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ta := newTestApp(t, nil)
		ctx, cancel := context.WithCancel(t.Context())
		events := make(chan ports.WatchEvent)
		ta.expectWatch(ctx, events)
		ta.detector.EXPECT().Changed(bPath).Return(true, nil)

		done := make(chan error, 1)
		go func() {
			done <- ta.app.Watch(ctx, []string{"/Game/A", "/Game/C", "Map:Arena"}, app.Options{Dir: "/project"})
		}()

		synctest.Wait()
		assert.Equal(t, "/Game/A: 1.5 kB\n/Game/C: 3.0 kB\nMap:Arena: 1.5 kB\n", ta.out.String())

		ta.files["B.uasset"] = &fstest.MapFile{Data: make([]byte, 1000)}
		events <- ports.WatchEvent{Path: bPath, Operation: ports.OpWrite}
		events <- ports.WatchEvent{Path: bPath, Operation: ports.OpWrite}

		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, ""+
			"/Game/A: 1.5 kB\n/Game/C: 3.0 kB\nMap:Arena: 1.5 kB\n"+
			"/Game/A: 2.0 kB (+500 B)\nMap:Arena: 2.0 kB (+500 B)\n",
			ta.out.String())

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_WatchIgnoresUnchangedContent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ta := newTestApp(t, nil)
		ctx, cancel := context.WithCancel(t.Context())
		events := make(chan ports.WatchEvent)
		ta.expectWatch(ctx, events)
		ta.detector.EXPECT().Changed(bPath).Return(false, nil)

		done := make(chan error, 1)
		go func() {
			done <- ta.app.Watch(ctx, []string{"/Game/A"}, app.Options{Dir: "/project"})
		}()
		synctest.Wait()

		events <- ports.WatchEvent{Path: bPath, Operation: ports.OpWrite}
		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, "/Game/A: 1.5 kB\n", ta.out.String())

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_WatchIgnoresFilesOutsideTheManifest(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ta := newTestApp(t, nil)
		ctx, cancel := context.WithCancel(t.Context())
		events := make(chan ports.WatchEvent)
		ta.expectWatch(ctx, events)
		ta.detector.EXPECT().Changed("/project/notes.txt").Return(true, nil)

		done := make(chan error, 1)
		go func() {
			done <- ta.app.Watch(ctx, []string{"/Game/A"}, app.Options{Dir: "/project"})
		}()
		synctest.Wait()

		events <- ports.WatchEvent{Path: "/project/notes.txt", Operation: ports.OpCreate}
		time.Sleep(time.Second)
		synctest.Wait()
		assert.Equal(t, "/Game/A: 1.5 kB\n", ta.out.String())

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_WatchStartFailure(t *testing.T) {
	ta := newTestApp(t, nil)
	ta.detector.EXPECT().Prime([]string{bPath}).Return(nil)
	ta.watcher.EXPECT().Start(gomock.Any(), "/project").Return(assert.AnError)

	err := ta.app.Watch(t.Context(), []string{"/Game/A"}, app.Options{Dir: "/project"})
	require.ErrorIs(t, err, assert.AnError)
}
