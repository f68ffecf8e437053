package scoring

import "fmt"

// axisSuggestions — шаблоны предложений по осям. Ключ — ось,
// значение — что именно стоит улучшить в смете.
var axisSuggestions = map[AxisID]string{
	AxisPrice:        "Сверьте цены за единицу с региональными эталонами и обоснуйте отклонения",
	AxisQuality:      "Приложите сертификации компании и детализируйте описание работ",
	AxisTimeline:     "Укажите даты начала и окончания работ и актуализируйте срок действия сметы",
	AxisCompliance:   "Дополните смету обязательными юридическими упоминаниями и корректным регистрационным номером",
	AxisFeasibility:  "Укажите количества и единицы измерения по каждой позиции",
	AxisTransparency: "Разбейте укрупнённые позиции и раскройте налоговую детализацию",
	AxisGuarantees:   "Подтвердите действующую страховку и явно опишите гарантийные обязательства",
	AxisInnovation:   "Опишите применяемые материалы и методы подробнее",
}

// generateRecommendations строит советы по осям, просевшим ниже порога.
// Пороги мягче, чем у предупреждений: рекомендации срабатывают раньше.
// Советы никогда не блокируют оценку и могут сосуществовать
// с пустым списком предупреждений.
func generateRecommendations(breakdown []AxisScore) []Recommendation {
	recs := []Recommendation{}

	for _, axis := range breakdown {
		if axis.MaxPoints <= 0 {
			continue
		}
		share := axis.Score / axis.MaxPoints
		if share >= recommendationAxisThreshold {
			continue
		}

		priority := PriorityLow
		switch {
		case share < recommendationHighThreshold:
			priority = PriorityHigh
		case share < recommendationMedThreshold:
			priority = PriorityMedium
		}

		suggestion, ok := axisSuggestions[axis.ID]
		if !ok {
			suggestion = fmt.Sprintf("Улучшите показатели по оси %q", axis.Label)
		}

		gap := axis.MaxPoints - axis.Score
		recs = append(recs, Recommendation{
			Category:   string(axis.ID),
			Priority:   priority,
			Suggestion: suggestion,
			Impact:     fmt.Sprintf("до +%.0f баллов по оси %q", gap, axis.Label),
		})
	}

	return recs
}
