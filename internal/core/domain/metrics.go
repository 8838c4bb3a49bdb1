package domain

// CTR returns the click-through rate of c as a percentage. A campaign
// without impressions has a CTR of zero.
func (c Campaign) CTR() float64 {
	return ClickThroughRate(c.Clicks, c.Impressions)
}

// CPC returns the cost per click of c. A campaign without clicks has a
// CPC of zero.
func (c Campaign) CPC() float64 {
	if c.Clicks == 0 {
		return 0
	}
	return c.Cost / float64(c.Clicks)
}

// ClickThroughRate computes clicks / impressions * 100, or zero when there
// are no impressions.
func ClickThroughRate(clicks, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(clicks) / float64(impressions) * 100
}
