package transly

// PlanResult splits the records of a prospective run by what Run would do
// with them, without calling the provider or writing the cache.
type PlanResult struct {
	// Cached holds records whose translation is already in the cache.
	Cached []Record

	// Pending holds records that would need a provider call.
	Pending []Record

	// Duplicates holds records whose text appeared earlier in the same run.
	Duplicates []Record

	// Skipped holds blank records, or every record for a same-language run.
	Skipped []Record
}

// PlanStats contains summary counts for a plan.
type PlanStats struct {
	Cached     int
	Pending    int
	Duplicates int
	Skipped    int
}

// Stats returns summary counts for the plan.
func (r *PlanResult) Stats() PlanStats {
	return PlanStats{
		Cached:     len(r.Cached),
		Pending:    len(r.Pending),
		Duplicates: len(r.Duplicates),
		Skipped:    len(r.Skipped),
	}
}

// HasWork reports whether running the plan would call the provider.
func (r *PlanResult) HasWork() bool {
	return len(r.Pending) > 0
}

// Plan classifies records the way Run would, without translating anything.
// Cache lookups still refresh recency in the in-memory store.
func (p *Pipeline) Plan(records []Record) *PlanResult {
	result := &PlanResult{}

	if p.IsSourceLang() {
		result.Skipped = append(result.Skipped, records...)
		return result
	}

	jobs, blank := groupRecords(records, p.sourceLang, p.targetLang)
	for _, i := range blank {
		result.Skipped = append(result.Skipped, records[i])
	}

	for _, j := range jobs {
		first := records[j.indexes[0]]
		if p.cache != nil {
			if _, ok := p.cache.Get(j.key); ok {
				result.Cached = append(result.Cached, first)
			} else {
				result.Pending = append(result.Pending, first)
			}
		} else {
			result.Pending = append(result.Pending, first)
		}
		for _, i := range j.indexes[1:] {
			result.Duplicates = append(result.Duplicates, records[i])
		}
	}

	return result
}
