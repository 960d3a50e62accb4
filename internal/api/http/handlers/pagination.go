package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page captures the page-number/page-size query parameters.
type Page struct {
	Number int
	Size   int
}

// Offset converts the page to a row offset.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage reads pagination parameters, falling back to sane defaults.
func ParsePage(c *fiber.Ctx) Page {
	number, err := strconv.Atoi(c.Query("page-number"))
	if err != nil || number < 1 {
		number = 1
	}
	size, err := strconv.Atoi(c.Query("page-size"))
	if err != nil || size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return Page{Number: number, Size: size}
}

// BuildLinkHeader renders the RFC 5988 Link header for a paginated listing.
// Only the relations that apply are emitted: first/prev are absent on the
// first page, next/last on the final one.
func BuildLinkHeader(path string, page Page, total int) string {
	lastPage := (total + page.Size - 1) / page.Size
	if lastPage < 1 {
		lastPage = 1
	}

	link := func(number int, rel string) string {
		return fmt.Sprintf("<%s?page-number=%d&page-size=%d>; rel=%q", path, number, page.Size, rel)
	}

	var parts []string
	if page.Number > 1 {
		parts = append(parts, link(1, "first"))
		parts = append(parts, link(page.Number-1, "prev"))
	}
	if page.Number < lastPage {
		parts = append(parts, link(page.Number+1, "next"))
		parts = append(parts, link(lastPage, "last"))
	}
	return strings.Join(parts, ", ")
}

// SetLinkHeader attaches the pagination Link header when it is non-empty.
func SetLinkHeader(c *fiber.Ctx, path string, page Page, total int) {
	if header := BuildLinkHeader(path, page, total); header != "" {
		c.Set("Link", header)
	}
}
