package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownLevel      = errors.New("unknown exam level")
	ErrUnknownExamOption = errors.New("unknown exam option")
)

// Level уровень экзамена, упорядочен от A1 до D2
type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
	LevelD1 Level = "D1"
	LevelD2 Level = "D2"
)

// LevelInfo справочная информация об уровне
type LevelInfo struct {
	Code        Level
	Name        string
	Difficulty  string
	Description string
}

var levelTable = []LevelInfo{
	{LevelA1, "A1 - Beginner", "Beginner", "Basic user level with simple phrases and everyday expressions"},
	{LevelA2, "A2 - Elementary", "Elementary", "Elementary level with basic communication in familiar situations"},
	{LevelB1, "B1 - Intermediate", "Intermediate", "Intermediate level with clear communication on familiar topics"},
	{LevelB2, "B2 - Upper Intermediate", "Upper Intermediate", "Upper intermediate with complex text understanding and fluent interaction"},
	{LevelC1, "C1 - Advanced", "Advanced", "Advanced level with effective use in social, academic and professional contexts"},
	{LevelC2, "C2 - Proficient", "Proficient", "Proficient level with easy understanding of virtually everything"},
	{LevelD1, "D1 - Expert", "Expert", "Expert level with sophisticated language use and cultural understanding"},
	{LevelD2, "D2 - Mastery", "Mastery", "Mastery level with native-like proficiency and academic excellence"},
}

// Levels возвращает копию справочника уровней в порядке возрастания
func Levels() []LevelInfo {
	out := make([]LevelInfo, len(levelTable))
	copy(out, levelTable)
	return out
}

// Rank позиция уровня (0 для A1), -1 для неизвестного
func (l Level) Rank() int {
	for i, info := range levelTable {
		if info.Code == l {
			return i
		}
	}
	return -1
}

func (l Level) Valid() bool {
	return l.Rank() >= 0
}

func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
	return l, nil
}

// ExamOption формат экзамена
type ExamOption string

const (
	ExamOral    ExamOption = "oral"
	ExamWritten ExamOption = "written"
	ExamBoth    ExamOption = "both"
)

// ExamOptionInfo справочная информация о формате экзамена
type ExamOptionInfo struct {
	Code      ExamOption
	Name      string
	BasePrice float64 // в базовой валюте
	Duration  time.Duration
	// RequiredDocument документ, подтверждающий сдачу другой части; пусто для both
	RequiredDocument string
	// SlotStride берется каждый N-й слот дня
	SlotStride int
}

var examOptionTable = []ExamOptionInfo{
	{ExamOral, "Oral Only", 85, 20 * time.Minute, "Written Exam Certificate", 1},
	{ExamWritten, "Written Only", 165, 2*time.Hour + 45*time.Minute, "Oral Exam Certificate", 2},
	{ExamBoth, "Both Examinations", 230, 3 * time.Hour, "", 2},
}

func ExamOptions() []ExamOptionInfo {
	out := make([]ExamOptionInfo, len(examOptionTable))
	copy(out, examOptionTable)
	return out
}

// Info возвращает справочную запись; ok=false для неизвестного формата
func (o ExamOption) Info() (ExamOptionInfo, bool) {
	for _, info := range examOptionTable {
		if info.Code == o {
			return info, true
		}
	}
	return ExamOptionInfo{}, false
}

func (o ExamOption) Valid() bool {
	_, ok := o.Info()
	return ok
}

// RequiresPrerequisite true для частичной сдачи (oral или written)
func (o ExamOption) RequiresPrerequisite() bool {
	return o.Valid() && o != ExamBoth
}

func ParseExamOption(s string) (ExamOption, error) {
	o := ExamOption(strings.ToLower(strings.TrimSpace(s)))
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownExamOption, s)
	}
	return o, nil
}
