package plan

import (
	"errors"
	"fmt"
)

// ErrUnknownFocus is returned when a focus label has no roster in the catalog.
var ErrUnknownFocus = errors.New("unknown workout focus")

// exerciseTemplate is one catalog entry. Accessory movements get one set
// fewer than the primary lifts. Circuit entries carry a fixed rep range that
// ignores the intensity table; circuits are inherently high-rep, so their
// reps do not tighten as intensity rises.
type exerciseTemplate struct {
	name      string
	accessory bool
	fixedReps string
	tip       string
}

// rosters maps each focus to its fixed, ordered exercise list. Lookups are
// fully reproducible; there is no randomness anywhere in the catalog.
var rosters = map[string][]exerciseTemplate{
	FocusUpperBody: {
		{name: "Push-Ups", tip: "Keep your body in a straight line from head to heels."},
		{name: "Dumbbell Bench Press", tip: "Lower the dumbbells until your elbows pass your torso."},
		{name: "Bent-Over Rows", tip: "Hinge at the hips and pull the bar toward your lower ribs."},
		{name: "Overhead Press", tip: "Brace your core and avoid arching the lower back."},
		{name: "Bicep Curls", accessory: true, tip: "Keep your elbows pinned to your sides."},
	},
	FocusLowerBody: {
		{name: "Squats", tip: "Drive through your heels and keep your chest up."},
		{name: "Romanian Deadlifts", tip: "Push your hips back and keep a soft bend in the knees."},
		{name: "Walking Lunges", tip: "Step far enough that your front knee stays over the ankle."},
		{name: "Calf Raises", accessory: true, tip: "Pause for a second at the top of each rep."},
		{name: "Glute Bridges", accessory: true, tip: "Squeeze your glutes hard at lockout."},
	},
	FocusFullBody: {
		{name: "Squats", tip: "Drive through your heels and keep your chest up."},
		{name: "Push-Ups", tip: "Keep your body in a straight line from head to heels."},
		{name: "Bent-Over Rows", tip: "Hinge at the hips and pull the bar toward your lower ribs."},
		{name: "Burpees", tip: "Land softly and keep a steady rhythm."},
		{name: "Russian Twists", accessory: true, tip: "Rotate from the torso, not the arms."},
	},
	FocusPush: {
		{name: "Bench Press", tip: "Plant your feet and keep your shoulder blades pinched."},
		{name: "Overhead Press", tip: "Brace your core and avoid arching the lower back."},
		{name: "Incline Dumbbell Press", tip: "Set the bench between 30 and 45 degrees."},
		{name: "Tricep Dips", accessory: true, tip: "Lean slightly forward to spare the shoulders."},
		{name: "Lateral Raises", accessory: true, tip: "Lead with your elbows, not your hands."},
	},
	FocusPull: {
		{name: "Pull-Ups", tip: "Start each rep from a dead hang."},
		{name: "Bent-Over Rows", tip: "Hinge at the hips and pull the bar toward your lower ribs."},
		{name: "Lat Pulldowns", tip: "Pull the bar to your upper chest, not behind the neck."},
		{name: "Face Pulls", accessory: true, tip: "Pull toward your forehead with elbows high."},
		{name: "Hammer Curls", accessory: true, tip: "Keep a neutral grip the whole rep."},
	},
	FocusLegs: {
		{name: "Back Squats", tip: "Sit between your hips, not on top of your knees."},
		{name: "Leg Press", tip: "Do not lock your knees out at the top."},
		{name: "Romanian Deadlifts", tip: "Push your hips back and keep a soft bend in the knees."},
		{name: "Leg Curls", accessory: true, tip: "Control the negative on every rep."},
		{name: "Calf Raises", accessory: true, tip: "Pause for a second at the top of each rep."},
	},
	FocusCardioStrength: {
		{name: "Jumping Jacks", fixedReps: "15-20", tip: "Stay light on the balls of your feet."},
		{name: "Burpees", fixedReps: "15-20", tip: "Land softly and keep a steady rhythm."},
		{name: "Bodyweight Squats", fixedReps: "15-20", tip: "Drive through your heels and keep your chest up."},
		{name: "Mountain Climbers", fixedReps: "12-15", tip: "Keep your hips level as the knees drive in."},
		{name: "Push-Ups", fixedReps: "12-15", tip: "Keep your body in a straight line from head to heels."},
	},
	FocusFullBodyMaintenance: {
		{name: "Goblet Squats", tip: "Hold the weight tight against your chest."},
		{name: "Push-Ups", tip: "Keep your body in a straight line from head to heels."},
		{name: "Dumbbell Rows", tip: "Row to your hip, not your shoulder."},
		{name: "Shoulder Taps", accessory: true, tip: "Keep your hips square in the plank position."},
	},
	FocusGeneralFitness: {
		{name: "Bodyweight Squats", tip: "Drive through your heels and keep your chest up."},
		{name: "Push-Ups", tip: "Keep your body in a straight line from head to heels."},
		{name: "Walking Lunges", tip: "Step far enough that your front knee stays over the ankle."},
		{name: "Jumping Jacks", tip: "Stay light on the balls of your feet."},
		{name: "Bird Dogs", accessory: true, tip: "Reach long instead of lifting high."},
	},
}

// warmupRoutine and cooldownRoutine are attached to every workout day.
var warmupRoutine = []string{
	"5 minutes of light cardio",
	"Arm circles and leg swings",
	"Dynamic stretching for the target muscles",
}

var cooldownRoutine = []string{
	"5 minutes of walking",
	"Static stretching for the worked muscles",
	"Deep breathing to bring the heart rate down",
}

// primarySets returns the set count for primary lifts at an intensity.
func primarySets(intensity Intensity) int {
	switch intensity {
	case IntensityHigh:
		return 4
	case IntensityMedium:
		return 3
	default:
		return 2
	}
}

// repsFor returns the target rep range for an intensity. Ranges tighten as
// intensity rises.
func repsFor(intensity Intensity) string {
	switch intensity {
	case IntensityHigh:
		return "8-12"
	case IntensityMedium:
		return "10-15"
	default:
		return "12-20"
	}
}

// restSecondsFor returns the between-set rest for an intensity.
func restSecondsFor(intensity Intensity) int {
	switch intensity {
	case IntensityHigh:
		return 90
	case IntensityMedium:
		return 60
	default:
		return 45
	}
}

// durationFor returns the advertised session length for an intensity.
func durationFor(intensity Intensity) string {
	switch intensity {
	case IntensityHigh:
		return "60 minutes"
	case IntensityMedium:
		return "45 minutes"
	default:
		return "30 minutes"
	}
}

// Exercises builds the ordered prescription list for a focus at an intensity.
func Exercises(focus string, intensity Intensity) ([]Prescription, error) {
	roster, ok := rosters[focus]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFocus, focus)
	}

	prescriptions := make([]Prescription, 0, len(roster))
	for _, tmpl := range roster {
		sets := primarySets(intensity)
		if tmpl.accessory {
			sets--
		}

		reps := repsFor(intensity)
		if tmpl.fixedReps != "" {
			reps = tmpl.fixedReps
		}

		prescriptions = append(prescriptions, Prescription{
			Name:        tmpl.name,
			Sets:        sets,
			Reps:        reps,
			RestSeconds: restSecondsFor(intensity),
			Tip:         tmpl.tip,
		})
	}
	return prescriptions, nil
}

// Focuses lists every focus label known to the catalog.
func Focuses() []string {
	return []string{
		FocusUpperBody,
		FocusLowerBody,
		FocusFullBody,
		FocusPush,
		FocusPull,
		FocusLegs,
		FocusCardioStrength,
		FocusFullBodyMaintenance,
		FocusGeneralFitness,
	}
}
