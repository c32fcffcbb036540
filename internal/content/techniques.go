package content

// Technique is one self-help technique shown in the /techniques browser.
type Technique struct {
	Key      string
	Category string
	MenuName string
	Details  string
}

// TechniqueCategory groups techniques in the browsing menu.
type TechniqueCategory struct {
	Key  string
	Name string
}

var TechniqueCategories = []TechniqueCategory{
	{Key: "anxiety", Name: "Работа с тревогой"},
	{Key: "thoughts", Name: "Работа с мыслями"},
	{Key: "relaxation", Name: "Расслабление"},
}

var Techniques = []Technique{
	{
		Key:      "breathing_478",
		Category: "anxiety",
		MenuName: "Дыхание 4-7-8 (2-3 мин)",
		Details: "**Дыхание 4-7-8**\n\n" +
			"**Описание**: Техника замедленного дыхания, активирующая парасимпатическую нервную систему.\n\n" +
			"**Как выполнять**:\n" +
			"1. Сделайте вдох через нос на 4 счета.\n" +
			"2. Задержите дыхание на 7 счетов.\n" +
			"3. Медленно выдохните через рот на 8 счетов.\n" +
			"4. Повторите цикл 4 раза.\n\n" +
			"Помогает при остром приступе тревоги и перед сном.",
	},
	{
		Key:      "grounding_54321",
		Category: "anxiety",
		MenuName: "Заземление 5-4-3-2-1 (3-5 мин)",
		Details: "**Заземление 5-4-3-2-1**\n\n" +
			"**Описание**: Сенсорная техника возвращения в «здесь и сейчас» при тревоге и панике.\n\n" +
			"**Как выполнять**: назовите\n" +
			"- 5 предметов, которые видите;\n" +
			"- 4 вещи, которые можете потрогать;\n" +
			"- 3 звука, которые слышите;\n" +
			"- 2 запаха, которые ощущаете;\n" +
			"- 1 вкус.\n\n" +
			"Переключает внимание с тревожных мыслей на окружение.",
	},
	{
		Key:      "cognitive_restructuring",
		Category: "thoughts",
		MenuName: "Когнитивная реструктуризация (10-15 мин)",
		Details: "**Когнитивная реструктуризация**\n\n" +
			"**Описание**: Техника из КПТ, направленная на выявление и изменение автоматических негативных мыслей. " +
			"Запишите мысль, проанализируйте доказательства за и против и сформулируйте более сбалансированную мысль.\n\n" +
			"**Пример**:\n" +
			"- Негативная мысль: «Я всегда все порчу».\n" +
			"- Сбалансированная мысль: «Иногда я ошибаюсь, но я учусь и часто справляюсь с задачами успешно».\n\n" +
			"Эта техника помогает постепенно менять привычные негативные шаблоны мышления.",
	},
	{
		Key:      "thought_journal",
		Category: "thoughts",
		MenuName: "Дневник мыслей (5-10 мин)",
		Details: "**Дневник мыслей**\n\n" +
			"**Описание**: Регулярная запись ситуаций, эмоций и автоматических мыслей.\n\n" +
			"**Как выполнять**:\n" +
			"1. Опишите ситуацию, вызвавшую сильную эмоцию.\n" +
			"2. Запишите возникшую мысль и силу эмоции от 0 до 100.\n" +
			"3. Перечитайте запись на следующий день и оцените мысль со стороны.\n\n" +
			"Со временем дневник показывает повторяющиеся шаблоны мышления.",
	},
	{
		Key:      "progressive_relaxation",
		Category: "relaxation",
		MenuName: "Прогрессивная мышечная релаксация (10-15 мин)",
		Details: "**Прогрессивная мышечная релаксация**\n\n" +
			"**Описание**: Последовательное напряжение и расслабление групп мышц от стоп к голове.\n\n" +
			"**Как выполнять**:\n" +
			"1. Напрягите мышцы стоп на 5-7 секунд.\n" +
			"2. Резко расслабьте и прочувствуйте разницу 15-20 секунд.\n" +
			"3. Поднимайтесь выше: икры, бедра, живот, руки, плечи, лицо.\n\n" +
			"Снижает физическое напряжение, помогает при бессоннице.",
	},
	{
		Key:      "body_scan",
		Category: "relaxation",
		MenuName: "Сканирование тела (5-10 мин)",
		Details: "**Сканирование тела**\n\n" +
			"**Описание**: Медитативная техника осознанного внимания к ощущениям тела.\n\n" +
			"**Как выполнять**:\n" +
			"1. Лягте или сядьте удобно, закройте глаза.\n" +
			"2. Медленно переводите внимание от макушки к стопам.\n" +
			"3. Отмечайте ощущения без оценки, не пытаясь их изменить.\n\n" +
			"Развивает навык наблюдения за состоянием без вовлечения.",
	},
}

// TechniquesInCategory lists the category's techniques in menu order.
func TechniquesInCategory(categoryKey string) []Technique {
	var out []Technique
	for _, t := range Techniques {
		if t.Category == categoryKey {
			out = append(out, t)
		}
	}
	return out
}

// TechniqueByKey returns nil for unknown keys.
func TechniqueByKey(key string) *Technique {
	for i := range Techniques {
		if Techniques[i].Key == key {
			return &Techniques[i]
		}
	}
	return nil
}
