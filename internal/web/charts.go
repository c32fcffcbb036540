package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/Shiziso/Bot/internal/repository"
)

// ChartsHandler renders the dashboard page with activity charts.
type ChartsHandler struct {
	log *zap.Logger
}

func NewChartsHandler(log *zap.Logger) *ChartsHandler {
	return &ChartsHandler{log: log}
}

// Dashboard renders command, test and mood timelines on one page.
func (h *ChartsHandler) Dashboard(c *gin.Context) {
	days := daysParam(c)

	commandData, err := repository.GetCommandTimeline(c, days)
	if err != nil {
		h.log.Error("Failed to load command timeline", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load dashboard data")
		return
	}
	testData, err := repository.GetTestCompletionTimeline(c, days)
	if err != nil {
		h.log.Error("Failed to load test timeline", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load dashboard data")
		return
	}
	moodData, err := repository.GetMoodTimeline(c, days)
	if err != nil {
		h.log.Error("Failed to load mood timeline", zap.Error(err))
		c.String(http.StatusInternalServerError, "Failed to load dashboard data")
		return
	}

	page := components.NewPage()
	page.SetPageTitle("Статистика бота")
	page.AddCharts(
		generateTimelineChart("Команды", "Обработано команд в день", commandData),
		generateTimelineChart("Тесты", "Завершено тестов в день", testData),
		generateTimelineChart("Настроение", "Записей настроения в день", moodData),
	)

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(c.Writer); err != nil {
		h.log.Error("Failed to render dashboard", zap.Error(err))
	}
}

func generateTimelineChart(title, subtitle string, data []repository.TimelineDataPoint) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Type: "time",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Type:  "value",
			Scale: opts.Bool(true),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	items := make([]opts.LineData, 0, len(data))
	for _, point := range data {
		items = append(items, opts.LineData{Value: []interface{}{point.Day, point.Value}})
	}
	line.AddSeries(title, items).SetSeriesOptions(charts.WithLineStyleOpts(opts.LineStyle{Width: 2}))
	return line
}
