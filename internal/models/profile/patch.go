package profile

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Optional marks whether a field was supplied in a request body. Null and
// zero values ("", empty list) count as not supplied.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: !reflect.ValueOf(&v).Elem().IsZero()}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func (o Optional[T]) applyTo(dst *T) {
	if o.Set {
		*dst = o.Value
	}
}

// SkillList decodes either a comma separated string or a JSON array into
// trimmed, non-empty skills.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw []string

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		raw = strings.Split(joined, ",")
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = SplitSkills(raw...)
	return nil
}

// SplitSkills splits every part on commas and drops empty tokens.
func SplitSkills(parts ...string) SkillList {
	var out SkillList
	for _, part := range parts {
		for _, tok := range strings.Split(part, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				out = append(out, tok)
			}
		}
	}
	return out
}

// Patch is the sparse field set accepted by profile upsert. Social links are
// flat in the request and merged into Profile.Social.
type Patch struct {
	Handle         Optional[string]    `json:"handle"`
	Company        Optional[string]    `json:"company"`
	Website        Optional[string]    `json:"website"`
	Location       Optional[string]    `json:"location"`
	Bio            Optional[string]    `json:"bio"`
	Status         Optional[string]    `json:"status"`
	GitHubUsername Optional[string]    `json:"githubusername"`
	Skills         Optional[SkillList] `json:"skills"`

	YouTube   Optional[string] `json:"youtube"`
	Twitter   Optional[string] `json:"twitter"`
	Facebook  Optional[string] `json:"facebook"`
	LinkedIn  Optional[string] `json:"linkedin"`
	Instagram Optional[string] `json:"instagram"`
}

type binding[T any] struct {
	src Optional[T]
	dst *T
}

// Apply copies every supplied field onto dst and leaves the rest untouched.
func (p *Patch) Apply(dst *Profile) {
	strs := []binding[string]{
		{p.Handle, &dst.Handle},
		{p.Company, &dst.Company},
		{p.Website, &dst.Website},
		{p.Location, &dst.Location},
		{p.Bio, &dst.Bio},
		{p.Status, &dst.Status},
		{p.GitHubUsername, &dst.GitHubUsername},
		{p.YouTube, &dst.Social.YouTube},
		{p.Twitter, &dst.Social.Twitter},
		{p.Facebook, &dst.Social.Facebook},
		{p.LinkedIn, &dst.Social.LinkedIn},
		{p.Instagram, &dst.Social.Instagram},
	}
	for _, b := range strs {
		b.src.applyTo(b.dst)
	}

	skills := SkillList(dst.Skills)
	p.Skills.applyTo(&skills)
	dst.Skills = []string(skills)
}
