package lockout_test

import (
	"testing"
	"time"

	"github.com/okian/underdog/internal/domain/lockout"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLocked(t *testing.T) {
	Convey("Given a kickoff instant", t, func() {
		kickoff := time.Date(2025, 9, 7, 17, 0, 0, 0, time.UTC)

		Convey("Before kickoff the contest is open", func() {
			So(lockout.Locked(kickoff, kickoff.Add(-time.Hour)), ShouldBeFalse)
			So(lockout.Locked(kickoff, kickoff.Add(-time.Nanosecond)), ShouldBeFalse)
		})

		Convey("At kickoff exactly the contest is locked", func() {
			So(lockout.Locked(kickoff, kickoff), ShouldBeTrue)
		})

		Convey("After kickoff the contest stays locked", func() {
			So(lockout.Locked(kickoff, kickoff.Add(time.Nanosecond)), ShouldBeTrue)
			So(lockout.Locked(kickoff, kickoff.Add(72*time.Hour)), ShouldBeTrue)
		})
	})
}
