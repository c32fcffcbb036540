package content

// Mood is one selectable mood level, ordered best to worst.
type Mood struct {
	Key   string
	Emoji string
	Label string
}

var Moods = []Mood{
	{Key: "great", Emoji: "😄", Label: "Отлично"},
	{Key: "good", Emoji: "😊", Label: "Хорошо"},
	{Key: "okay", Emoji: "😐", Label: "Нормально"},
	{Key: "bad", Emoji: "😟", Label: "Плохо"},
	{Key: "terrible", Emoji: "😢", Label: "Ужасно"},
}

// MoodByKey returns nil for unknown keys.
func MoodByKey(key string) *Mood {
	for i := range Moods {
		if Moods[i].Key == key {
			return &Moods[i]
		}
	}
	return nil
}
