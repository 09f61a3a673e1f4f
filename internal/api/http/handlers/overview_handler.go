package handlers

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/time-service/internal/api/dto"
	"github.com/spec-kit/time-service/internal/domain"
	"github.com/spec-kit/time-service/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// OverviewHandler serves the cross-user overview and its export.
type OverviewHandler struct {
	service OverviewWorkflow
	loc     *time.Location
	now     func() time.Time
}

// NewOverviewHandler constructs handler. Date filters are calendar dates in loc.
func NewOverviewHandler(overview OverviewWorkflow, loc *time.Location) *OverviewHandler {
	if loc == nil {
		loc = time.Local
	}
	return &OverviewHandler{service: overview, loc: loc, now: time.Now}
}

// Page GET /oversigt.
func (h *OverviewHandler) Page(c *fiber.Ctx) error {
	filters := parseOverviewFilters(c, h.loc)
	overview, err := h.service.Query(c.UserContext(), filters.query())
	if err != nil {
		return err
	}

	page := dto.OverviewPage{
		Filters:     filters.OverviewFilters,
		Entries:     entryResponses(overview.Entries),
		Totals:      totalsResponse(overview.Totals),
		Departments: overview.Departments,
		Users:       overview.Users,
		ExportURL:   "/oversigt/export" + filters.queryString(filters.sort),
	}
	for _, column := range domain.SortColumns {
		page.SortLinks = append(page.SortLinks, dto.SortLink{
			Column: string(column),
			URL:    filters.sortURL(column),
			Icon:   filters.sortIcon(column),
		})
	}
	return c.JSON(fiber.Map{"data": page})
}

// Export GET /oversigt/export streams the filtered listing as XLSX.
func (h *OverviewHandler) Export(c *fiber.Ctx) error {
	filters := parseOverviewFilters(c, h.loc)
	var buf bytes.Buffer
	if err := h.service.Export(c.UserContext(), filters.query(), &buf); err != nil {
		return err
	}
	c.Attachment(fmt.Sprintf("oversigt-%s.xlsx", h.now().In(h.loc).Format(dto.DateLayout)))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	return c.Send(buf.Bytes())
}

type overviewFilters struct {
	dto.OverviewFilters
	from *time.Time
	to   *time.Time
	sort domain.Sort
}

// parseOverviewFilters reads the overview query string. Unparseable dates
// are dropped; SortDescending defaults to true.
func parseOverviewFilters(c *fiber.Ctx, loc *time.Location) overviewFilters {
	f := overviewFilters{sort: domain.Sort{
		Column:     domain.ParseSortColumn(c.Query("SortBy")),
		Descending: true,
	}}
	if raw := c.Query("SortDescending"); raw != "" {
		if desc, err := strconv.ParseBool(raw); err == nil {
			f.sort.Descending = desc
		}
	}
	f.from = parseDate(c.Query("FraDato"), loc)
	f.to = parseDate(c.Query("TilDato"), loc)

	f.Department = strings.TrimSpace(c.Query("ValgtAfdeling"))
	f.User = strings.TrimSpace(c.Query("ValgtBruger"))
	f.SortBy = string(f.sort.Column)
	f.SortDescending = f.sort.Descending
	if f.from != nil {
		f.From = f.from.Format(dto.DateLayout)
	}
	if f.to != nil {
		f.To = f.to.Format(dto.DateLayout)
	}
	return f
}

func (f overviewFilters) query() service.OverviewQuery {
	return service.OverviewQuery{
		From:       f.from,
		To:         f.to,
		Department: f.Department,
		FullName:   f.User,
		Sort:       f.sort,
	}
}

// sortURL links a column header: the active column flips direction, any
// other column starts descending. Filters are carried along.
func (f overviewFilters) sortURL(column domain.SortColumn) string {
	return f.queryString(f.sort.Toggle(column))
}

func (f overviewFilters) sortIcon(column domain.SortColumn) string {
	switch {
	case f.sort.Column != column:
		return "bi-arrow-down-up"
	case f.sort.Descending:
		return "bi-sort-down"
	default:
		return "bi-sort-up"
	}
}

func (f overviewFilters) queryString(sort domain.Sort) string {
	var b strings.Builder
	fmt.Fprintf(&b, "?SortBy=%s&SortDescending=%t", url.QueryEscape(string(sort.Column)), sort.Descending)
	if f.From != "" {
		b.WriteString("&FraDato=" + f.From)
	}
	if f.To != "" {
		b.WriteString("&TilDato=" + f.To)
	}
	if f.Department != "" {
		b.WriteString("&ValgtAfdeling=" + url.QueryEscape(f.Department))
	}
	if f.User != "" {
		b.WriteString("&ValgtBruger=" + url.QueryEscape(f.User))
	}
	return b.String()
}

func parseDate(raw string, loc *time.Location) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parsed, err := time.ParseInLocation(dto.DateLayout, raw, loc)
	if err != nil {
		return nil
	}
	return &parsed
}
