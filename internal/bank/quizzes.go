package bank

import "space-stem-quiz/internal/domain"

// Built-in quiz ids.
const (
	SpaceBasicsID   = "space-basics"
	RocketScienceID = "rocket-science"
	SpaceMathID     = "space-math"
)

// Builtin returns the quizzes shipped with the binary, in menu order.
// Each call returns fresh slices so callers cannot alias the bank.
func Builtin() []domain.Quiz {
	return []domain.Quiz{spaceBasics(), rocketScience(), spaceMath()}
}

func spaceBasics() domain.Quiz {
	return domain.Quiz{
		ID:               SpaceBasicsID,
		Title:            "Space Basics",
		Description:      "Test your knowledge of planets, stars, and space exploration",
		Level:            "beginner",
		EstimatedMinutes: 8,
		Questions: []domain.Question{
			{
				ID:            1,
				Type:          domain.TypeMultipleChoice,
				Prompt:        "Which planet is known as the 'Red Planet'?",
				Options:       []string{"Venus", "Mars", "Jupiter", "Saturn"},
				CorrectAnswer: 1,
				XPReward:      25,
				Difficulty:    domain.DifficultyEasy,
				Subject:       domain.SubjectScience,
				Explanation:   "Mars is called the Red Planet because of iron oxide (rust) on its surface!",
			},
			{
				ID:     2,
				Type:   domain.TypeDragDrop,
				Prompt: "Match each planet to its correct description:",
				Items: []domain.DragItem{
					{ID: "earth", Content: "🌍 Earth", CorrectTargetID: "target-earth"},
					{ID: "mars", Content: "🔴 Mars", CorrectTargetID: "target-mars"},
					{ID: "jupiter", Content: "🪐 Jupiter", CorrectTargetID: "target-jupiter"},
				},
				Targets: []domain.DropTarget{
					{ID: "target-earth", Content: "Has water and life", Description: "The only known planet with life"},
					{ID: "target-mars", Content: "The Red Planet", Description: "Known for its rusty color"},
					{ID: "target-jupiter", Content: "Largest planet", Description: "A gas giant with many moons"},
				},
				XPReward:    40,
				Difficulty:  domain.DifficultyMedium,
				Subject:     domain.SubjectScience,
				Explanation: "Great job matching the planets! Each planet has unique characteristics.",
			},
			{
				ID:             3,
				Type:           domain.TypeShortAnswer,
				Prompt:         "How many moons does Earth have?",
				CorrectAnswers: []string{"1", "one", "One"},
				AnswerKind:     domain.AnswerKindText,
				Placeholder:    "Type your answer...",
				XPReward:       15,
				Difficulty:     domain.DifficultyEasy,
				Subject:        domain.SubjectScience,
				Explanation:    "Earth has exactly one natural satellite - the Moon!",
			},
			{
				ID:     4,
				Type:   domain.TypeMultipleChoice,
				Prompt: "What is the speed of light in a vacuum?",
				Options: []string{
					"299,792,458 m/s",
					"150,000,000 m/s",
					"384,400 km/s",
					"1,000,000 m/s",
				},
				CorrectAnswer: 0,
				XPReward:      35,
				Difficulty:    domain.DifficultyHard,
				Subject:       domain.SubjectScience,
				Explanation:   "Light travels at approximately 299,792,458 meters per second in a vacuum - that's really fast!",
			},
		},
	}
}

func rocketScience() domain.Quiz {
	return domain.Quiz{
		ID:               RocketScienceID,
		Title:            "Rocket Science",
		Description:      "Learn about propulsion, trajectories, and space missions",
		Level:            "intermediate",
		EstimatedMinutes: 6,
		Questions: []domain.Question{
			{
				ID:     101,
				Type:   domain.TypeMultipleChoice,
				Prompt: "What is the main principle behind rocket propulsion?",
				Options: []string{
					"Newton's Third Law",
					"Bernoulli's Principle",
					"Conservation of Energy",
					"Gravity",
				},
				CorrectAnswer: 0,
				XPReward:      30,
				Difficulty:    domain.DifficultyMedium,
				Subject:       domain.SubjectEngineering,
				Explanation:   "Newton's Third Law states that for every action, there's an equal and opposite reaction!",
			},
			{
				ID:             102,
				Type:           domain.TypeShortAnswer,
				Prompt:         "What is the escape velocity from Earth in km/s? (Round to nearest whole number)",
				CorrectAnswers: []string{"11", "eleven"},
				AnswerKind:     domain.AnswerKindNumber,
				Placeholder:    "Enter velocity in km/s",
				XPReward:       40,
				Difficulty:     domain.DifficultyHard,
				Subject:        domain.SubjectMathematics,
				Explanation:    "Earth's escape velocity is approximately 11.2 km/s - that's really fast!",
			},
			{
				ID:     103,
				Type:   domain.TypeDragDrop,
				Prompt: "Match rocket components to their functions:",
				Items: []domain.DragItem{
					{ID: "engine", Content: "🚀 Engine", CorrectTargetID: "target-propulsion"},
					{ID: "fuel-tank", Content: "⛽ Fuel Tank", CorrectTargetID: "target-storage"},
					{ID: "guidance", Content: "🧭 Guidance System", CorrectTargetID: "target-navigation"},
				},
				Targets: []domain.DropTarget{
					{ID: "target-propulsion", Content: "Provides thrust", Description: "Creates the force to move the rocket"},
					{ID: "target-storage", Content: "Stores propellant", Description: "Holds fuel and oxidizer"},
					{ID: "target-navigation", Content: "Controls direction", Description: "Steers the rocket to its destination"},
				},
				XPReward:    35,
				Difficulty:  domain.DifficultyMedium,
				Subject:     domain.SubjectEngineering,
				Explanation: "Rockets need all these components working together to reach space!",
			},
		},
	}
}

func spaceMath() domain.Quiz {
	return domain.Quiz{
		ID:               SpaceMathID,
		Title:            "Space Mathematics",
		Description:      "Calculate distances, velocities, and orbital mechanics",
		Level:            "advanced",
		EstimatedMinutes: 4,
		Questions: []domain.Question{
			{
				ID:             201,
				Type:           domain.TypeShortAnswer,
				Prompt:         "If light travels 300,000 km per second, how many minutes does it take to reach Earth from the Sun? (150 million km away)",
				CorrectAnswers: []string{"8.33", "8", "8.3"},
				AnswerKind:     domain.AnswerKindNumber,
				Placeholder:    "Enter time in minutes",
				XPReward:       50,
				Difficulty:     domain.DifficultyHard,
				Subject:        domain.SubjectMathematics,
				Explanation:    "Light from the Sun takes about 8.33 minutes to reach Earth - that's why we see the Sun as it was 8 minutes ago!",
			},
			{
				ID:     202,
				Type:   domain.TypeMultipleChoice,
				Prompt: "What happens to gravitational force when the distance between two objects doubles?",
				Options: []string{
					"It doubles",
					"It halves",
					"It becomes 1/4",
					"It stays the same",
				},
				CorrectAnswer: 2,
				XPReward:      45,
				Difficulty:    domain.DifficultyHard,
				Subject:       domain.SubjectMathematics,
				Explanation:   "Gravitational force follows an inverse square law - double the distance, quarter the force!",
			},
		},
	}
}
