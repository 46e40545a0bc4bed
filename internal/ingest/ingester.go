// Pollgraph - Survey Split Statistics and Pictogram Layout
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollgraph

package ingest

import (
	"math"

	"github.com/tomtom215/pollgraph/internal/models"
)

// Ingester filters raw respondents against one survey.
// It holds no mutable state and is safe for concurrent use.
type Ingester struct {
	survey models.Survey

	groupingKeys []string
	responseKeys []string
	weightKey    string
}

// NewIngester validates survey and returns an Ingester for it.
// An invalid survey is a configuration error and is returned as such.
func NewIngester(survey models.Survey) (*Ingester, error) {
	if err := survey.Validate(); err != nil {
		return nil, err
	}

	ing := &Ingester{survey: survey.Clone()}
	for _, q := range survey.GroupingQuestions {
		ing.groupingKeys = append(ing.groupingKeys, q.Key())
	}
	for _, q := range survey.ResponseQuestions {
		ing.responseKeys = append(ing.responseKeys, q.Key())
	}
	if wq, ok := survey.Weight.Question(); ok {
		ing.weightKey = wq.Key()
	}
	return ing, nil
}

// Survey returns a copy of the survey the ingester validates against.
func (i *Ingester) Survey() models.Survey {
	return i.survey.Clone()
}

// Ingest validates every respondent in batch. The batch itself is not
// modified and excluded respondents never abort processing.
func (i *Ingester) Ingest(batch []models.RawRespondent) Result {
	result := Result{
		Records:        make([]models.RespondentRecord, 0, len(batch)),
		TotalProcessed: len(batch),
	}

	for _, raw := range batch {
		rec, reason, ok := i.record(raw)
		if !ok {
			result.InvalidCount++
			if result.Exclusions == nil {
				result.Exclusions = make(map[Reason]int)
			}
			result.Exclusions[reason]++
			continue
		}
		result.ValidCount++
		result.Records = append(result.Records, rec)
	}
	return result
}

// Record validates a single respondent. It returns the exclusion reason
// and false when the respondent cannot be used.
func (i *Ingester) Record(raw models.RawRespondent) (models.RespondentRecord, Reason, bool) {
	return i.record(raw)
}

func (i *Ingester) record(raw models.RawRespondent) (models.RespondentRecord, Reason, bool) {
	rec := models.RespondentRecord{
		ID:              raw.ID,
		Weight:          1.0,
		GroupIndices:    make([]int, len(i.survey.GroupingQuestions)),
		ExpandedIndices: make([]int, len(i.survey.ResponseQuestions)),
		Codes:           make(map[string]int, len(i.groupingKeys)+len(i.responseKeys)),
	}

	for qi, q := range i.survey.GroupingQuestions {
		code, reason, ok := lookupCode(raw.Responses, i.groupingKeys[qi],
			ReasonGroupingNull, ReasonGroupingMissing, ReasonGroupingInvalid)
		if !ok {
			return models.RespondentRecord{}, reason, false
		}
		g := q.GroupIndexFor(code)
		if g < 0 {
			return models.RespondentRecord{}, ReasonGroupingInvalid, false
		}
		rec.GroupIndices[qi] = g
		rec.Codes[i.groupingKeys[qi]] = code
	}

	for qi, q := range i.survey.ResponseQuestions {
		code, reason, ok := lookupCode(raw.Responses, i.responseKeys[qi],
			ReasonResponseNull, ReasonResponseMissing, ReasonResponseInvalid)
		if !ok {
			return models.RespondentRecord{}, reason, false
		}
		g := q.ExpandedIndexFor(code)
		if g < 0 {
			return models.RespondentRecord{}, ReasonResponseInvalid, false
		}
		rec.ExpandedIndices[qi] = g
		rec.Codes[i.responseKeys[qi]] = code
	}

	if i.weightKey != "" {
		v, present := raw.Responses[i.weightKey]
		switch {
		case !present:
			return models.RespondentRecord{}, ReasonWeightMissing, false
		case v == nil:
			return models.RespondentRecord{}, ReasonWeightNull, false
		case math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0:
			return models.RespondentRecord{}, ReasonWeightInvalid, false
		}
		rec.Weight = *v
	}

	return rec, "", true
}

// lookupCode reads an integral response code for key.
func lookupCode(responses map[string]*float64, key string, null, missing, invalid Reason) (int, Reason, bool) {
	v, present := responses[key]
	if !present {
		return 0, missing, false
	}
	if v == nil {
		return 0, null, false
	}
	f := *v
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, invalid, false
	}
	return int(f), "", true
}
