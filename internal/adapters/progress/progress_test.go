package progress_test

import (
	"context"
	"testing"

	"github.com/courtstats/courtstats/internal/adapters/progress"
	. "github.com/smartystreets/goconvey/convey"
)

func TestChannelNotifier(t *testing.T) {
	Convey("Given a channel notifier", t, func() {
		Convey("When publishing within the buffer", func() {
			n := progress.NewChannelNotifier(progress.WithBufferSize(2))
			ok := n.Publish(context.Background(), progress.Event{Kind: progress.KindSeasonLoaded, Year: 2023})

			Convey("Then the event is delivered", func() {
				So(ok, ShouldBeTrue)
				e := <-n.Events()
				So(e.Kind, ShouldEqual, progress.KindSeasonLoaded)
				So(e.Year, ShouldEqual, 2023)
			})
		})

		Convey("When the buffer is full", func() {
			n := progress.NewChannelNotifier(progress.WithBufferSize(1))
			So(n.Publish(context.Background(), progress.Event{Kind: progress.KindSeasonLoaded}), ShouldBeTrue)
			dropped := n.Publish(context.Background(), progress.Event{Kind: progress.KindLoadDone})

			Convey("Then the publish drops instead of blocking", func() {
				So(dropped, ShouldBeFalse)
			})
		})

		Convey("When the notifier is closed", func() {
			n := progress.NewChannelNotifier()
			So(n.Close(), ShouldBeNil)

			Convey("Then publishing reports the drop", func() {
				So(n.Publish(context.Background(), progress.Event{Kind: progress.KindLoadDone}), ShouldBeFalse)
			})

			Convey("Then the event channel is closed", func() {
				_, open := <-n.Events()
				So(open, ShouldBeFalse)
			})

			Convey("Then closing again is harmless", func() {
				So(n.Close(), ShouldBeNil)
			})
		})
	})

	Convey("Given the nop notifier", t, func() {
		n := progress.NopNotifier{}

		Convey("Then publish succeeds and nothing is delivered", func() {
			So(n.Publish(context.Background(), progress.Event{Kind: progress.KindLoadDone}), ShouldBeTrue)
			So(n.Events(), ShouldBeNil)
			So(n.Close(), ShouldBeNil)
		})
	})
}
