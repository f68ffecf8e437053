package scoring

// GradeFor отображает итоговый балл в букву по шкале рубрики.
// Таблица проверяется от старшего порога к младшему; выигрывает
// первый порог, который балл достиг. Нижняя ступень шкалы — catch-all,
// поэтому функция тотальна для любого балла, включая отрицательный.
func (r *Rubric) GradeFor(score int) string {
	for _, step := range r.Scale {
		if score >= step.MinScore {
			return step.Grade
		}
	}
	// Недостижимо для валидной рубрики (Validate гарантирует catch-all),
	// но не паникуем и на сломанной шкале.
	return r.Scale[len(r.Scale)-1].Grade
}
