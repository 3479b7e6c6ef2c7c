package radiometer

import (
	"errors"
	"testing"
)

func TestPlanSwitching(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want SwitchPlan
	}{
		{
			name: "even schedule",
			opts: Options{
				NumSamp:         2048,
				SampleRate:      1.024e6,
				IntegrationTime: 4,
				SwitchRate:      5,
			},
			want: SwitchPlan{BlocksPerDwell: 100, NumDwells: 20},
		},
		{
			name: "single cycle",
			opts: Options{
				NumSamp:         2048,
				SampleRate:      2.048e6,
				IntegrationTime: 2,
				SwitchRate:      1,
			},
			want: SwitchPlan{BlocksPerDwell: 1000, NumDwells: 2},
		},
		{
			name: "truncates partial dwell",
			opts: Options{
				NumSamp:         1024,
				SampleRate:      1.024e6,
				IntegrationTime: 2.5,
				SwitchRate:      1,
			},
			want: SwitchPlan{BlocksPerDwell: 1000, NumDwells: 2},
		},
		{
			name: "fast switching accepted with warning",
			opts: Options{
				NumSamp:         1024,
				SampleRate:      2.048e6,
				IntegrationTime: 1,
				SwitchRate:      16,
			},
			want: SwitchPlan{BlocksPerDwell: 125, NumDwells: 16},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanSwitching(tt.opts)
			if err != nil {
				t.Fatalf("PlanSwitching: %v", err)
			}
			if got != tt.want {
				t.Errorf("PlanSwitching() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPlanSwitchingRejects(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{
			name: "zero switching rate",
			opts: Options{NumSamp: 2048, SampleRate: 1.024e6, IntegrationTime: 10},
		},
		{
			name: "negative switching rate",
			opts: Options{NumSamp: 2048, SampleRate: 1.024e6, IntegrationTime: 10, SwitchRate: -1},
		},
		{
			name: "integration shorter than one cycle",
			opts: Options{NumSamp: 2048, SampleRate: 1.024e6, IntegrationTime: 0.1, SwitchRate: 1},
		},
		{
			name: "dwell shorter than one block",
			opts: Options{NumSamp: 65536, SampleRate: 1.024e6, IntegrationTime: 10, SwitchRate: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := PlanSwitching(tt.opts); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("PlanSwitching() err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
