package ui

import "fmt"

// Pager tracks the pallet shown by the viewer. Paging past either end wraps
// around.
type Pager struct {
	index int
	total int
}

func NewPager(total int) *Pager {
	if total < 0 {
		total = 0
	}
	return &Pager{total: total}
}

// Index returns the zero-based current page.
func (p *Pager) Index() int { return p.index }

// Total returns the number of pages.
func (p *Pager) Total() int { return p.total }

// Next advances one page and returns the new index.
func (p *Pager) Next() int {
	return p.move(1)
}

// Prev goes back one page and returns the new index.
func (p *Pager) Prev() int {
	return p.move(-1)
}

func (p *Pager) move(delta int) int {
	if p.total == 0 {
		return 0
	}
	p.index = ((p.index+delta)%p.total + p.total) % p.total
	return p.index
}

// Title returns the window title for the current page, "Pallet i/n".
func (p *Pager) Title() string {
	if p.total == 0 {
		return "Pallet 0/0"
	}
	return fmt.Sprintf("Pallet %d/%d", p.index+1, p.total)
}
