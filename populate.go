package vcard

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag(tagName)
}

// tagName is the struct tag read by Populate: `vcard:"<property>[,<type>]"`.
const tagName = "vcard"

// Property names accepted in vcard struct tags.
const (
	PropFullName   = "fn"
	PropFirstName  = "first"
	PropMiddleName = "middle"
	PropLastName   = "last"
	PropOrg        = "org"
	PropTitle      = "title"
	PropRevision   = "rev"
	PropTel        = "tel"
	PropEmail      = "email"
	PropAddress    = "adr"
	PropURL        = "url"
)

// typedProperties accept a TYPE after the comma.
var typedProperties = map[string]bool{
	PropTel:     true,
	PropEmail:   true,
	PropAddress: true,
	PropURL:     true,
}

// scalarProperties hold a single value per card.
var scalarProperties = map[string]bool{
	PropFullName:   true,
	PropFirstName:  true,
	PropMiddleName: true,
	PropLastName:   true,
	PropOrg:        true,
	PropTitle:      true,
	PropRevision:   true,
}

var timeType = reflect.TypeOf(time.Time{})

// populatePlan lists the tagged fields of one struct type.
type populatePlan struct {
	typeName string
	fields   []populateFieldPlan
}

// populateFieldPlan describes how to read a single field.
type populateFieldPlan struct {
	index      []int  // reflect.Value.FieldByIndex access path
	name       string // field name for error messages
	property   string // vcard property, e.g. "tel"
	typ        string // TYPE for typed properties
	isSlice    bool   // true if field is []string
	isTime     bool   // true if field is time.Time
	ptrIndices []int  // indices where pointer dereference is needed
}

// Populate fills b from the vcard-tagged fields of v, a struct or pointer
// to struct. Empty values are skipped. Each value goes through the normal
// adder, so b's strictness applies.
//
//	type Person struct {
//	    Name  string   `vcard:"fn"`
//	    Work  string   `vcard:"tel,work"`
//	    Mails []string `vcard:"email"`
//	}
func Populate[T any](b *Builder, v T) error {
	if p, ok := any(v).(CardPopulator); ok {
		return p.PopulateCard(b)
	}
	if p, ok := any(&v).(CardPopulator); ok {
		return p.PopulateCard(b)
	}

	rv := reflect.ValueOf(&v).Elem()
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return newConfigError(ErrInvalidTag, rv.Type().String(), "populate needs a struct")
	}

	if reflect.TypeFor[T]().Kind() == reflect.Struct {
		// Seeds sentinel's cache so scanType finds the root metadata.
		sentinel.Scan[T]()
	}

	plan, err := planFor(rv.Type())
	if err != nil {
		return err
	}

	for _, fp := range plan.fields {
		field, ok := getField(rv, fp)
		if !ok {
			continue
		}
		if err := applyField(b, fp, field); err != nil {
			return fmt.Errorf("populate field %s: %w", fp.name, err)
		}
	}
	return nil
}

// applyField hands one field value to the matching builder method.
func applyField(b *Builder, fp populateFieldPlan, field reflect.Value) error {
	if fp.isTime {
		t := field.Interface().(time.Time)
		if !t.IsZero() {
			b.SetRevisionTime(t)
		}
		return nil
	}

	if fp.isSlice {
		for i := 0; i < field.Len(); i++ {
			if err := applyValue(b, fp, field.Index(i).String()); err != nil {
				return fmt.Errorf("[%d]: %w", i, err)
			}
		}
		return nil
	}

	return applyValue(b, fp, field.String())
}

func applyValue(b *Builder, fp populateFieldPlan, value string) error {
	if value == "" {
		return nil
	}
	switch fp.property {
	case PropFullName:
		b.SetFullName(value)
	case PropFirstName:
		b.SetFirstName(value)
	case PropMiddleName:
		b.SetMiddleName(value)
	case PropLastName:
		b.SetLastName(value)
	case PropOrg:
		b.SetOrganization(value)
	case PropTitle:
		b.SetTitle(value)
	case PropRevision:
		b.SetRevision(value)
	case PropTel:
		return b.AddPhoneNumber(fp.typ, value)
	case PropEmail:
		return b.AddEmail(fp.typ, value)
	case PropAddress:
		return b.AddAddress(fp.typ, value)
	case PropURL:
		return b.AddURL(value, "", fp.typ)
	}
	return nil
}

// buildPlan creates a plan for rt by scanning struct tags.
func buildPlan(rt reflect.Type) (*populatePlan, error) {
	spec := scanType(rt)
	plan := &populatePlan{typeName: spec.TypeName}
	walking := map[reflect.Type]bool{rt: true}
	if err := buildPlanRecursive(plan, spec, walking, nil, nil, ""); err != nil {
		return nil, err
	}
	return plan, nil
}

// buildPlanRecursive processes fields and nested structs. walking holds the
// struct types on the current path; a field of one of those types is not
// descended into, so self-referential types such as a contact with a
// *Contact manager plan only their own fields.
func buildPlanRecursive(plan *populatePlan, spec sentinel.Metadata, walking map[reflect.Type]bool, parentIndex, ptrIndices []int, namePrefix string) error {
	for _, field := range spec.Fields {
		fullIndex := append(append([]int{}, parentIndex...), field.Index...)
		fullName := field.Name
		if namePrefix != "" {
			fullName = namePrefix + "." + field.Name
		}

		tag, tagged := field.Tags[tagName]
		if tag == "-" {
			continue
		}

		if field.ReflectType == timeType {
			if !tagged {
				continue
			}
			fp, err := parseFieldTag(tag, fullName)
			if err != nil {
				return err
			}
			if fp.property != PropRevision {
				return newConfigError(ErrInvalidTag, fullName, "time.Time fields only support rev")
			}
			fp.index, fp.ptrIndices, fp.isTime = fullIndex, ptrIndices, true
			plan.fields = append(plan.fields, fp)
			continue
		}

		// Nested structs are walked whether or not they carry a tag.
		if field.Kind == sentinel.KindStruct {
			if err := walkNested(plan, field.ReflectType, walking, fullIndex, ptrIndices, fullName); err != nil {
				return err
			}
			continue
		}
		if field.Kind == sentinel.KindPointer && field.ReflectType.Elem().Kind() == reflect.Struct &&
			field.ReflectType.Elem() != timeType {
			newPtrIndices := append(append([]int{}, ptrIndices...), len(fullIndex)-1)
			if err := walkNested(plan, field.ReflectType.Elem(), walking, fullIndex, newPtrIndices, fullName); err != nil {
				return err
			}
			continue
		}

		if !tagged {
			continue
		}

		isString := field.ReflectType.Kind() == reflect.String
		isStringSlice := field.ReflectType.Kind() == reflect.Slice &&
			field.ReflectType.Elem().Kind() == reflect.String
		if !isString && !isStringSlice {
			return newConfigError(ErrInvalidTag, fullName, "field must be string or []string")
		}

		fp, err := parseFieldTag(tag, fullName)
		if err != nil {
			return err
		}
		if isStringSlice && scalarProperties[fp.property] {
			return newConfigError(ErrInvalidTag, fullName, fmt.Sprintf("%s does not accept a list", fp.property))
		}
		fp.index, fp.ptrIndices, fp.isSlice = fullIndex, ptrIndices, isStringSlice
		plan.fields = append(plan.fields, fp)
	}
	return nil
}

// walkNested plans the fields of the nested struct type rt unless rt is
// already being walked.
func walkNested(plan *populatePlan, rt reflect.Type, walking map[reflect.Type]bool, index, ptrIndices []int, name string) error {
	if walking[rt] {
		return nil
	}
	walking[rt] = true
	defer delete(walking, rt)
	return buildPlanRecursive(plan, scanType(rt), walking, index, ptrIndices, name)
}

// parseFieldTag parses `<property>[,<type>]`.
func parseFieldTag(tag, fieldName string) (populateFieldPlan, error) {
	prop, typ, hasType := strings.Cut(tag, ",")
	prop = strings.TrimSpace(prop)
	typ = strings.TrimSpace(typ)

	if !typedProperties[prop] && !scalarProperties[prop] {
		return populateFieldPlan{}, newConfigError(ErrInvalidTag, fieldName, fmt.Sprintf("unknown property %q", prop))
	}
	if hasType && !typedProperties[prop] {
		return populateFieldPlan{}, newConfigError(ErrInvalidTag, fieldName, fmt.Sprintf("%s does not take a type", prop))
	}
	return populateFieldPlan{name: fieldName, property: prop, typ: typ}, nil
}

// scanType returns sentinel metadata for rt, falling back to a direct
// reflection scan for types sentinel has not cached.
func scanType(rt reflect.Type) sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return spec
	}

	spec := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if val, ok := sf.Tag.Lookup(tagName); ok {
			fm.Tags[tagName] = val
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}

		spec.Fields = append(spec.Fields, fm)
	}

	return spec
}

// getField navigates a field path, dereferencing pointers as needed.
func getField(rv reflect.Value, fp populateFieldPlan) (reflect.Value, bool) {
	if len(fp.ptrIndices) == 0 {
		return rv.FieldByIndex(fp.index), true
	}

	current := rv
	ptrSet := make(map[int]bool, len(fp.ptrIndices))
	for _, idx := range fp.ptrIndices {
		ptrSet[idx] = true
	}

	for i, idx := range fp.index {
		current = current.Field(idx)

		if ptrSet[i] {
			if current.IsNil() {
				return reflect.Value{}, false
			}
			current = current.Elem()
		}
	}

	return current, true
}
