package service

import (
	"errors"
	"testing"

	"quiz_backend/internal/util"
)

func TestBuildScaleRejectsInvalidPartitions(t *testing.T) {
	svc := NewGradeService(nil)

	cases := []struct {
		name string
		req  GradeScaleRequest
		want error
	}{
		{
			name: "no bands",
			req:  GradeScaleRequest{MinValue: 0, MaxValue: 10},
			want: util.ErrNoBands,
		},
		{
			name: "inverted scale interval",
			req: GradeScaleRequest{
				MinValue: 10, MaxValue: 0,
				Bands: []GradeBandInput{{LowerBound: 0, UpperBound: 5, Label: "A"}},
			},
			want: util.ErrInvertedBand,
		},
		{
			name: "band below scale minimum",
			req: GradeScaleRequest{
				MinValue: 0, MaxValue: 10,
				Bands: []GradeBandInput{{LowerBound: -1, UpperBound: 5, Label: "A"}},
			},
			want: util.ErrBandOutOfRange,
		},
		{
			name: "band above scale maximum",
			req: GradeScaleRequest{
				MinValue: 0, MaxValue: 10,
				Bands: []GradeBandInput{{LowerBound: 0, UpperBound: 11, Label: "A"}},
			},
			want: util.ErrBandOutOfRange,
		},
		{
			name: "inverted band",
			req: GradeScaleRequest{
				MinValue: 0, MaxValue: 10,
				Bands: []GradeBandInput{{LowerBound: 6, UpperBound: 4, Label: "A"}},
			},
			want: util.ErrInvertedBand,
		},
		{
			name: "overlapping bands",
			req: GradeScaleRequest{
				MinValue: 0, MaxValue: 10,
				Bands: []GradeBandInput{
					{LowerBound: 0, UpperBound: 5, Label: "Fail"},
					{LowerBound: 4, UpperBound: 10, Label: "Pass"},
				},
			},
			want: util.ErrOverlappingBands,
		},
		{
			name: "shared boundary counts as overlap",
			req: GradeScaleRequest{
				MinValue: 0, MaxValue: 10,
				Bands: []GradeBandInput{
					{LowerBound: 0, UpperBound: 5, Label: "Fail"},
					{LowerBound: 5, UpperBound: 10, Label: "Pass"},
				},
			},
			want: util.ErrOverlappingBands,
		},
		{
			name: "overlap detected after sorting",
			req: GradeScaleRequest{
				MinValue: 0, MaxValue: 10,
				Bands: []GradeBandInput{
					{LowerBound: 4, UpperBound: 10, Label: "Pass"},
					{LowerBound: 0, UpperBound: 5, Label: "Fail"},
				},
			},
			want: util.ErrOverlappingBands,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.BuildScale(tc.req)
			if !errors.Is(err, tc.want) {
				t.Fatalf("BuildScale() error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestBuildScaleSortsBands(t *testing.T) {
	svc := NewGradeService(nil)

	scale, err := svc.BuildScale(GradeScaleRequest{
		MinValue: 0, MaxValue: 10,
		Bands: []GradeBandInput{
			{LowerBound: 7, UpperBound: 10, Label: "Pass"},
			{LowerBound: 0, UpperBound: 3, Label: "Fail"},
			{LowerBound: 4, UpperBound: 6, Label: "Borderline"},
		},
	})
	if err != nil {
		t.Fatalf("BuildScale() error = %v", err)
	}

	wantLabels := []string{"Fail", "Borderline", "Pass"}
	if len(scale.Bands) != len(wantLabels) {
		t.Fatalf("got %d bands, want %d", len(scale.Bands), len(wantLabels))
	}
	for i, label := range wantLabels {
		if scale.Bands[i].Label != label {
			t.Errorf("band %d label = %q, want %q", i, scale.Bands[i].Label, label)
		}
		if scale.Bands[i].Position != i {
			t.Errorf("band %d position = %d, want %d", i, scale.Bands[i].Position, i)
		}
	}
}

func TestResolve(t *testing.T) {
	svc := NewGradeService(nil)

	scale, err := svc.BuildScale(GradeScaleRequest{
		MinValue: 0, MaxValue: 10,
		Bands: []GradeBandInput{
			{LowerBound: 0, UpperBound: 4, Label: "Fail"},
			{LowerBound: 5, UpperBound: 10, Label: "Pass"},
		},
	})
	if err != nil {
		t.Fatalf("BuildScale() error = %v", err)
	}

	cases := []struct {
		score float64
		want  string
	}{
		{0, "Fail"},
		{4, "Fail"},
		{5, "Pass"},
		{10, "Pass"},
	}
	for _, tc := range cases {
		got, err := svc.Resolve(scale, tc.score)
		if err != nil {
			t.Fatalf("Resolve(%v) error = %v", tc.score, err)
		}
		if got != tc.want {
			t.Errorf("Resolve(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}

	// 4.5 falls into the gap between the two bands.
	if _, err := svc.Resolve(scale, 4.5); !errors.Is(err, util.ErrNoMatchingBand) {
		t.Fatalf("Resolve(4.5) error = %v, want %v", err, util.ErrNoMatchingBand)
	}
}
