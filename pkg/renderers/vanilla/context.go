package vanilla

import (
	"path"
	"strconv"
	"strings"

	"github.com/goliatone/go-numerology/pkg/numerology"
	"github.com/goliatone/go-numerology/pkg/render"
)

const (
	defaultAction        = "/result"
	defaultUpdateGridURL = "/update-grid"
	defaultAssetsURL     = "/static"
)

// buildContext flattens the view into maps, slices and strings so templates
// never depend on Go types.
func (r *Renderer) buildContext(view render.View, opts render.RenderOptions) map[string]any {
	errors := make(map[string]any, len(opts.Errors))
	for field, messages := range opts.Errors {
		errors[field] = stringsToAny(messages)
	}

	ctx := map[string]any{
		"page":        r.pageContext(opts),
		"theme":       themeContext(opts.Theme),
		"errors":      errors,
		"form_errors": stringsToAny(opts.FormErrors),
		"form": map[string]any{
			"name":      sanitizeText(view.Form.Name),
			"birthdate": sanitizeText(view.Form.Birthdate),
		},
	}
	if view.HasResult() {
		ctx["results"] = resultContext(*view.Result)
	}
	return ctx
}

func (r *Renderer) pageContext(opts render.RenderOptions) map[string]any {
	assets := strings.TrimRight(firstNonEmpty(opts.AssetsURL, defaultAssetsURL), "/")
	return map[string]any{
		"title":           r.title,
		"action":          firstNonEmpty(opts.Action, defaultAction),
		"update_grid_url": firstNonEmpty(opts.UpdateGridURL, defaultUpdateGridURL),
		"stylesheet":      assetURL(opts, assets, StylesheetName),
		"script":          assetURL(opts, assets, GridScriptName),
	}
}

func assetURL(opts render.RenderOptions, base, name string) string {
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		if resolved := opts.Theme.AssetURL(name); resolved != "" {
			return resolved
		}
	}
	if base == "" {
		return "/" + name
	}
	return base + "/" + path.Clean(name)
}

func resultContext(res numerology.Result) map[string]any {
	letters := make([]any, 0, len(res.ChaldeanLetters))
	for _, lv := range res.ChaldeanLetters {
		letters = append(letters, map[string]any{
			"letter": lv.Letter,
			"value":  strconv.Itoa(lv.Value),
		})
	}

	gridRows := make([]any, 0, len(res.VedicGrid))
	grid := make([]any, 0, len(res.VedicGrid))
	for i, row := range res.VedicGrid {
		cells := make([]any, 0, len(row))
		for j, value := range row {
			base := ""
			if i < len(res.GridLayout) && j < len(res.GridLayout[i]) {
				base = strconv.Itoa(res.GridLayout[i][j])
			}
			cells = append(cells, map[string]any{"value": value, "base": base})
		}
		gridRows = append(gridRows, cells)
		grid = append(grid, stringsToAny(row))
	}

	periods := make([]any, 0, len(res.Periods))
	for _, p := range res.Periods {
		periods = append(periods, map[string]any{
			"start_date":  p.StartDate,
			"end_date":    p.EndDate,
			"duration":    strconv.Itoa(p.Duration),
			"running_age": p.RunningAge,
		})
	}

	yearly := make([]any, 0, len(res.YearlyPeriods))
	for _, row := range res.YearlyPeriods {
		yearly = append(yearly, map[string]any{
			"year":        strconv.Itoa(row.Year),
			"start_date":  row.StartDate,
			"running_age": strconv.Itoa(row.RunningAge),
			"mahadasha":   strconv.Itoa(row.Mahadasha),
			"antardasha":  strconv.Itoa(row.Antardasha),
		})
	}

	labels := make([]any, 0, numerology.CycleLength)
	for n := 1; n <= numerology.CycleLength; n++ {
		labels = append(labels, strconv.Itoa(n))
	}

	return map[string]any{
		"name":            sanitizeText(res.Name),
		"birthdate":       res.Birthdate.String(),
		"mode":            string(res.Mode),
		"chaldean_number": strconv.Itoa(res.ChaldeanNumber),
		"destiny_number":  strconv.Itoa(res.DestinyNumber),
		"root_number":     strconv.Itoa(res.RootNumber),
		"letters":         letters,
		"grid":            grid,
		"grid_rows":       gridRows,
		"cycle":           intsToAny(res.Cycle),
		"labels":          labels,
		"periods":         periods,
		"yearly":          yearly,
		"missing_numbers": intsToAny(res.MissingNumbers),
	}
}

func stringsToAny(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

func intsToAny(in []int) []any {
	out := make([]any, 0, len(in))
	for _, n := range in {
		out = append(out, strconv.Itoa(n))
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
