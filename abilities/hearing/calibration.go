package astihearing

import (
	"context"
	"math"
	"time"

	"github.com/asticode/go-astichartjs"
	"github.com/asticode/go-astilog"
	"github.com/asticode/go-astitools/pcm"
	"github.com/asticode/go-astitools/ptr"
	"github.com/pkg/errors"
)

const calibrationStepDuration = 100 * time.Millisecond

// Calibration represents calibration results
type Calibration struct {
	Chart                         astichartjs.Chart `json:"chart"`
	MaxAudioLevel                 float64           `json:"max_audio_level"`
	MaxSilenceAudioLevel          float64           `json:"max_silence_audio_level"`
	SuggestedMaxSilenceAudioLevel float64           `json:"suggested_max_silence_audio_level"`
}

// Calibrate listens to the ambient noise for the calibrate duration.
// The suggested max silence audio level is adopted unless one has been configured.
func (l *Listener) Calibrate(ctx context.Context) (c Calibration, err error) {
	// Read samples. Reads returning no samples count for the time they took.
	var b []int
	var waited time.Duration
	last := l.now()
	for l.duration(len(b))+waited < l.o.CalibrateDuration {
		// Check context
		if err = ctx.Err(); err != nil {
			err = errors.Wrap(err, "astihearing: context error")
			return
		}

		// Read
		var ss []int
		if ss, err = l.r.ReadSamples(); err != nil {
			err = errors.Wrap(err, "astihearing: reading samples failed")
			return
		}

		// Append
		n := l.now()
		if len(ss) == 0 {
			waited += n.Sub(last)
			l.sleep(emptyReadDelay)
		}
		last = n
		b = append(b, ss...)
	}

	// Compute results
	c = l.calibrationResults(b)

	// Update max silence audio level
	if l.o.MaxSilenceAudioLevel == 0 {
		l.maxSilenceAudioLevel = c.SuggestedMaxSilenceAudioLevel
	}
	c.MaxSilenceAudioLevel = l.maxSilenceAudioLevel
	astilog.Debugf("astihearing: max audio level is %f, max silence audio level is %f", c.MaxAudioLevel, c.MaxSilenceAudioLevel)
	return
}

func (l *Listener) calibrationResults(b []int) (c Calibration) {
	// Create calibration
	c = Calibration{
		Chart: astichartjs.Chart{
			Data: &astichartjs.Data{
				Datasets: []astichartjs.Dataset{{
					BackgroundColor: astichartjs.ChartBackgroundColorGreen,
					BorderColor:     astichartjs.ChartBorderColorGreen,
					Label:           "Audio level",
				}},
			},
			Options: &astichartjs.Options{
				Scales: &astichartjs.Scales{
					XAxes: []astichartjs.Axis{
						{
							Position: astichartjs.ChartAxisPositionsBottom,
							ScaleLabel: &astichartjs.ScaleLabel{
								Display:     astiptr.Bool(true),
								LabelString: "Duration (s)",
							},
							Type: astichartjs.ChartAxisTypesLinear,
						},
					},
					YAxes: []astichartjs.Axis{
						{
							ScaleLabel: &astichartjs.ScaleLabel{
								Display:     astiptr.Bool(true),
								LabelString: "Audio level",
							},
						},
					},
				},
				Title: &astichartjs.Title{Display: astiptr.Bool(true)},
			},
			Type: astichartjs.ChartTypeLine,
		},
	}

	// Get number of samples per step
	numberOfSamplesPerStep := int(math.Ceil(float64(l.numChannels*l.sampleRate) * calibrationStepDuration.Seconds()))

	// Get number of steps
	numberOfSteps := int(math.Ceil(float64(len(b)) / float64(numberOfSamplesPerStep)))

	// Process buffer
	var maxX float64
	for idx := 0; idx < numberOfSteps; idx++ {
		// Offsets
		start := idx * numberOfSamplesPerStep
		end := start + numberOfSamplesPerStep

		// Get samples
		var samples []int
		if len(b) >= end {
			samples = b[start:end]
		} else {
			samples = b[start:]
		}

		// Compute audio level
		audioLevel := astipcm.AudioLevel(samples)

		// Get max audio level
		c.MaxAudioLevel = math.Max(c.MaxAudioLevel, audioLevel)

		// Add data to chart
		maxX = float64(numberOfSamplesPerStep) / float64(l.numChannels*l.sampleRate) * float64(idx)
		c.Chart.Data.Datasets[0].Data = append(c.Chart.Data.Datasets[0].Data, astichartjs.DataPoint{
			X: maxX,
			Y: audioLevel,
		})
	}

	// Get suggested max silence audio level
	c.SuggestedMaxSilenceAudioLevel = 0.3 * c.MaxAudioLevel

	// Add suggested max silence audio level to chart
	c.Chart.Data.Datasets = append(c.Chart.Data.Datasets, astichartjs.Dataset{
		BackgroundColor: astichartjs.ChartBackgroundColorRed,
		BorderColor:     astichartjs.ChartBorderColorRed,
		Data: []interface{}{
			astichartjs.DataPoint{X: 0, Y: c.SuggestedMaxSilenceAudioLevel},
			astichartjs.DataPoint{X: maxX, Y: c.SuggestedMaxSilenceAudioLevel},
		},
		Label: "Suggested max silence audio level",
	})
	return
}
