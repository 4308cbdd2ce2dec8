package rng

import (
	"cmp"
	"slices"
	"testing"
)

const (
	min = -1
	max = 11
)

func Test(t *testing.T) {
	for _, test := range []struct {
		r    Range[int]
		want []int
	}{
		{Range[int]{}, nil},
		{From(1).To(3), []int{1, 2, 3}},
		{From(3).Below(4), []int{3}},
		{Above(2).To(5), []int{3, 4, 5}},
		{Above(8).Below(10), []int{9}},
		{From(9).Below(8), nil},
		{To(2), []int{-1, 0, 1, 2}},
		{Below(1), []int{-1, 0}},
		{All[int](), []int{-1, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
	} {
		got := slice(test.r)
		if !slices.Equal(got, test.want) {
			t.Errorf("%s: got %v, want %v", test.r, got, test.want)
		}
		rb := test.r.Backwards()
		t.Log(rb)
		got = slice(rb)
		want := slices.Clone(test.want)
		slices.Reverse(want)
		if !slices.Equal(got, want) {
			t.Errorf("%s: got %v, want %v", rb, got, want)
		}
		if rb.Backwards().IsBackwards() {
			t.Errorf("%s: double Backwards is still backwards", rb)
		}
	}
}

func TestContains(t *testing.T) {
	for _, test := range []struct {
		r Range[int]
	}{
		{Range[int]{}},
		{From(1).To(3)},
		{Above(2).Below(5)},
		{To(4)},
		{Below(4)},
		{All[int]()},
	} {
		want := slice(test.r)
		var got []int
		for i := min; i <= max; i++ {
			if test.r.Contains(cmp.Compare[int], i) {
				got = append(got, i)
			}
		}
		if !slices.Equal(got, want) {
			t.Errorf("%s: Contains accepts %v, want %v", test.r, got, want)
		}
	}
}

func TestString(t *testing.T) {
	for _, test := range []struct {
		r    Range[int]
		want string
	}{
		{All[int](), "(-∞, ∞)"},
		{From(2), "[2, ∞)"},
		{Above(2), "(2, ∞)"},
		{To(2), "(-∞, 2]"},
		{Below(2), "(-∞, 2)"},
		{From(2).Below(5).Backwards(), "[2, 5) backwards"},
	} {
		if got := test.r.String(); got != test.want {
			t.Errorf("got %q, want %q", got, test.want)
		}
	}
}

func TestSecondHighBoundPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("no panic")
		}
	}()
	From(1).To(3).Below(4)
}

func slice(r Range[int]) []int {
	lo, linf, lincl := r.Low()
	hi, hinf, hincl := r.High()
	if linf {
		lo = min
	} else if !lincl {
		lo++
	}
	if hinf {
		hi = max
	} else if !hincl {
		hi--
	}
	var ints []int
	if r.IsBackwards() {
		for i := hi; i >= lo; i-- {
			ints = append(ints, i)
		}

	} else {
		for i := lo; i <= hi; i++ {
			ints = append(ints, i)
		}
	}
	return ints
}
