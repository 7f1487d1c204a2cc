package detect

//ResultCache keeps the most recent detection Result so frames that skip
//inference can reuse it instead of flickering to an empty annotation.
//Staleness is the accepted trade: an old box beats no box.
type ResultCache struct {
	last Result
	has  bool
}

func NewResultCache() *ResultCache {
	return &ResultCache{}
}

//Update replaces the stored Result unconditionally
func (c *ResultCache) Update(r Result) {
	c.last = r
	c.has = true
}

//GetOrLast stores and returns r when r is non-nil. When r is nil it returns
//the previously stored Result, or (nil, false) if nothing was ever stored.
func (c *ResultCache) GetOrLast(r Result) (Result, bool) {
	if r != nil {
		c.Update(r)
		return r, true
	}

	if !c.has {
		return nil, false
	}

	return c.last, true
}
