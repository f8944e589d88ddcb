package domain

// Step шаг мастера бронирования (1..6)
type Step int

const (
	StepLevel        Step = 1
	StepExamOption   Step = 2
	StepPrerequisite Step = 3
	StepDate         Step = 4
	StepTime         Step = 5
	StepSummary      Step = 6
)

var stepNames = map[Step]string{
	StepLevel:        "level",
	StepExamOption:   "exam_option",
	StepPrerequisite: "prerequisite",
	StepDate:         "date",
	StepTime:         "time",
	StepSummary:      "summary",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// stepRule шаг, на котором мастер остановится, если pending вернул true
type stepRule struct {
	step    Step
	pending func(SelectionState) bool
}

// stepRules проверяются по порядку, срабатывает первое подходящее правило
var stepRules = []stepRule{
	{StepLevel, func(s SelectionState) bool { return !s.HasLevel() }},
	{StepExamOption, func(s SelectionState) bool { return !s.HasExamOption() }},
	{StepPrerequisite, func(s SelectionState) bool { return !IsProgressAllowed(s) }},
	{StepDate, func(s SelectionState) bool { return !s.HasDate() }},
	{StepTime, func(s SelectionState) bool { return !s.HasTime() }},
}

// ResolveStep вычисляет текущий шаг по состоянию выбора
func ResolveStep(s SelectionState) Step {
	for _, rule := range stepRules {
		if rule.pending(s) {
			return rule.step
		}
	}
	return StepSummary
}
