package webui

// PageSize is the fixed flyer grid page size.
const PageSize = 6

// Pagination describes one page of a flyer grid. Pages are 1-based and
// clamped; stepping past either boundary stays put instead of wrapping.
type Pagination struct {
	Page       int
	TotalPages int
	Start      int
	End        int
	HasPrev    bool
	HasNext    bool
	PrevPage   int
	NextPage   int
}

// Paginate computes the clamped page window over count items.
func Paginate(count, page int) Pagination {
	totalPages := (count + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > count {
		end = count
	}
	if start > count {
		start = count
	}

	p := Pagination{
		Page:       page,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
		HasPrev:    page > 1,
		HasNext:    page < totalPages,
		PrevPage:   page,
		NextPage:   page,
	}
	if p.HasPrev {
		p.PrevPage = page - 1
	}
	if p.HasNext {
		p.NextPage = page + 1
	}
	return p
}

// PlaceholderHue returns the deterministic placeholder tile hue for a slot
// without an uploaded image.
func PlaceholderHue(index int) int {
	return (index * 30) % 360
}
