package division_test

import (
	"testing"

	division "github.com/okian/chalk/internal/domain/division"
	"github.com/smartystreets/goconvey/convey"
)

func TestAgeBand(t *testing.T) {
	convey.Convey("Given the age band boundaries", t, func() {
		convey.Convey("When the age is below 24", func() {
			convey.Convey("Then the band should be Junior", func() {
				convey.So(division.AgeBand(17), convey.ShouldEqual, division.BandJunior)
				convey.So(division.AgeBand(23), convey.ShouldEqual, division.BandJunior)
				convey.So(division.AgeBand(23.9), convey.ShouldEqual, division.BandJunior)
			})
		})

		convey.Convey("When the age is 24 up to but excluding 40", func() {
			convey.Convey("Then the band should be Open", func() {
				convey.So(division.AgeBand(24), convey.ShouldEqual, division.BandOpen)
				convey.So(division.AgeBand(31.5), convey.ShouldEqual, division.BandOpen)
				convey.So(division.AgeBand(39), convey.ShouldEqual, division.BandOpen)
				convey.So(division.AgeBand(39.9), convey.ShouldEqual, division.BandOpen)
			})
		})

		convey.Convey("When the age is 40 or above", func() {
			convey.Convey("Then the band should be Masters", func() {
				convey.So(division.AgeBand(40), convey.ShouldEqual, division.BandMasters)
				convey.So(division.AgeBand(55), convey.ShouldEqual, division.BandMasters)
				convey.So(division.AgeBand(73), convey.ShouldEqual, division.BandMasters)
			})
		})
	})
}

func TestSexBucket(t *testing.T) {
	convey.Convey("Given raw sex values", t, func() {
		convey.Convey("When the trimmed value starts with M in any case", func() {
			convey.Convey("Then the bucket should be Men", func() {
				convey.So(division.SexBucket("M"), convey.ShouldEqual, division.BucketMen)
				convey.So(division.SexBucket("m"), convey.ShouldEqual, division.BucketMen)
				convey.So(division.SexBucket("Male"), convey.ShouldEqual, division.BucketMen)
				convey.So(division.SexBucket("  M  "), convey.ShouldEqual, division.BucketMen)
			})
		})

		convey.Convey("When the value does not start with M", func() {
			convey.Convey("Then the bucket should be Women", func() {
				convey.So(division.SexBucket("F"), convey.ShouldEqual, division.BucketWomen)
				convey.So(division.SexBucket("f"), convey.ShouldEqual, division.BucketWomen)
				convey.So(division.SexBucket("Female"), convey.ShouldEqual, division.BucketWomen)
				convey.So(division.SexBucket("W"), convey.ShouldEqual, division.BucketWomen)
			})
		})

		convey.Convey("When the value is empty or whitespace", func() {
			convey.Convey("Then the bucket should be Women", func() {
				convey.So(division.SexBucket(""), convey.ShouldEqual, division.BucketWomen)
				convey.So(division.SexBucket("   "), convey.ShouldEqual, division.BucketWomen)
			})
		})
	})
}

func TestClassify(t *testing.T) {
	convey.Convey("Given the division classifier", t, func() {
		convey.Convey("When the age is known", func() {
			cases := []struct {
				age  float64
				sex  string
				want division.Division
			}{
				{17, "M", division.JuniorMen},
				{23, "F", division.JuniorWomen},
				{24, "M", division.OpenMen},
				{31.5, "F", division.OpenWomen},
				{39, "Male", division.OpenMen},
				{40, "M", division.MastersMen},
				{55, "Female", division.MastersWomen},
			}

			convey.Convey("Then age band and sex bucket should combine into a division", func() {
				for _, c := range cases {
					got, ok := division.Classify(c.age, true, c.sex)
					convey.So(ok, convey.ShouldBeTrue)
					convey.So(got, convey.ShouldEqual, c.want)
				}
			})
		})

		convey.Convey("When the age is unknown", func() {
			got, ok := division.Classify(0, false, "M")

			convey.Convey("Then no division should be assigned", func() {
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(got, convey.ShouldEqual, division.Division(""))
			})
		})

		convey.Convey("When the age is unknown even with a valid sex value", func() {
			_, ok := division.Classify(30, false, "F")

			convey.Convey("Then the record should still be unclassifiable", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}

func TestOrder(t *testing.T) {
	convey.Convey("Given the display order", t, func() {
		order := division.Order()

		convey.Convey("Then it should enumerate all six divisions", func() {
			convey.So(order, convey.ShouldHaveLength, 6)
		})

		convey.Convey("Then Open should come before Junior and Masters", func() {
			convey.So(order[0], convey.ShouldEqual, division.OpenMen)
			convey.So(order[1], convey.ShouldEqual, division.OpenWomen)
			convey.So(order[2], convey.ShouldEqual, division.JuniorMen)
			convey.So(order[3], convey.ShouldEqual, division.JuniorWomen)
			convey.So(order[4], convey.ShouldEqual, division.MastersMen)
			convey.So(order[5], convey.ShouldEqual, division.MastersWomen)
		})

		convey.Convey("Then mutating the returned slice should not affect later calls", func() {
			order[0] = division.MastersWomen
			convey.So(division.Order()[0], convey.ShouldEqual, division.OpenMen)
		})
	})
}

func TestParse(t *testing.T) {
	convey.Convey("Given division label parsing", t, func() {
		convey.Convey("When the label matches a known division", func() {
			got, ok := division.Parse("Open Men")

			convey.Convey("Then it should return the canonical division", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got, convey.ShouldEqual, division.OpenMen)
			})
		})

		convey.Convey("When the label differs in case or padding", func() {
			got, ok := division.Parse("  masters women ")

			convey.Convey("Then it should still resolve to the canonical form", func() {
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(got, convey.ShouldEqual, division.MastersWomen)
			})
		})

		convey.Convey("When the label is unknown", func() {
			_, ok := division.Parse("Teen Men")

			convey.Convey("Then it should not resolve", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the label is empty", func() {
			_, ok := division.Parse("")

			convey.Convey("Then it should not resolve", func() {
				convey.So(ok, convey.ShouldBeFalse)
			})
		})
	})
}
