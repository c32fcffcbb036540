// Package content holds the bot's static self-help content. Data only;
// selection logic lives with the callers.
package content

// DailyTips is the pool the daily tip is drawn from.
var DailyTips = []string{
	"Найдите 5 минут для глубокого дыхания. Это поможет успокоиться и сосредоточиться.",
	"Запишите три вещи, за которые вы благодарны сегодня. Практика благодарности улучшает настроение.",
	"Сделайте небольшую прогулку на свежем воздухе. Физическая активность полезна для ума и тела.",
	"Позвоните близкому человеку просто так, чтобы поболтать. Социальные связи важны.",
	"Попробуйте новую короткую медитацию. В интернете много бесплатных ресурсов.",
	"Уделите 15 минут хобби, которое приносит вам удовольствие.",
	"Напишите список своих маленьких побед за неделю. Это повысит самооценку.",
	"Практикуйте осознанность: сосредоточьтесь на своих ощущениях здесь и сейчас на пару минут.",
	"Выпейте стакан воды. Иногда обезвоживание влияет на наше самочувствие больше, чем мы думаем.",
	"Улыбнитесь себе в зеркале. Это простой способ поднять настроение.",
	"Высыпайтесь: спите не менее 8 часов в сутки.",
	"Практикуйте медленное дыхание: вдох через нос, выдох через рот.",
	"Опишите свои ощущения вслух, чтобы успокоиться.",
	"Фокусируйтесь на реальном окружении, перечисляйте предметы вокруг.",
	"Займитесь простой задачей, требующей концентрации, например, мытьем посуды.",
	"Практикуйте глубокое дыхание для расслабления: вдох на 4 счета, выдох на 6.",
	"Ограничьте время, проводимое в социальных сетях, чтобы избежать сравнения.",
	"Начинайте день с благодарности за то, что у вас есть.",
	"Ведите дневник благодарности: записывайте три вещи, за которые вы благодарны.",
	"Планируйте приятные события на день, чтобы было что ждать.",
	"Выражайте свои эмоции творчески: рисуйте, пишите, танцуйте.",
	"Ставьте перед собой маленькие задачи и отмечайте их выполнение.",
	"Хвалите себя за достижения, делитесь успехами.",
	"Сравнивайте себя с прошлым собой, а не с другими.",
	"Избегайте перфекционизма, принимайте, что ошибки — это часть обучения.",
	"Учитесь говорить \"нет\" при необходимости, чтобы не перегружаться.",
	"Обсуждайте возникающие проблемы сразу, не накапливайте обиды.",
	"Общайтесь с друзьями и близкими, поддерживайте социальные связи.",
	"Составляйте списки дел и планируйте свой день.",
	"Занимайтесь физическими упражнениями регулярно.",
	"Проводите время на природе, это снижает стресс.",
	"Устанавливайте реалистичные цели и разбивайте их на шаги.",
	"Применяйте прием \"10 минут\": начните работать над задачей на 10 минут, чтобы преодолеть прокрастинацию.",
	"Устраивайте себе \"цифровой детокс\" — время без гаджетов.",
	"Заземлитесь: назовите 3 предмета, которые видите, и 3 звука, которые слышите, чтобы вернуться в \"здесь и сейчас\".",
	"Послушайте музыку, которая поднимает настроение или помогает расслабиться.",
	"Не бойтесь просить о помощи, когда она вам нужна.",
	"Определите свои личные границы и учитесь их отстаивать вежливо, но твердо.",
	"Найдите время для тишины и уединения, чтобы побыть наедине с собой.",
	"Завершайте день рефлексией: подумайте о хорошем и о том, чему научились.",
}
