package security

import (
	"contract-generator/internal/analyze"
	"contract-generator/internal/common"
	"contract-generator/internal/diagnostic"
)

// Access is the requirement a caller must meet.
type Access int

const (
	Authenticated Access = iota
	Anonymous
)

// String returns the access name.
func (a Access) String() string {
	switch a {
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return common.UnknownStr
	}
}

// Marker is the security directive present on one declaration.
type Marker int

const (
	MarkerNone Marker = iota
	MarkerAnonymous
	MarkerPermitAll
	MarkerDenyAll
	MarkerRolesAllowed
)

var markerDirectives = map[string]Marker{
	analyze.DirectiveAnonymous:    MarkerAnonymous,
	analyze.DirectivePermitAll:    MarkerPermitAll,
	analyze.DirectiveDenyAll:      MarkerDenyAll,
	analyze.DirectiveRolesAllowed: MarkerRolesAllowed,
}

// Rule is the marker of one declaration with the roles it names.
type Rule struct {
	Marker Marker
	Roles  []string
}

// Decision is the effective requirement of a method.
type Decision struct {
	// Excluded methods are left out of the contract.
	Excluded bool
	Access   Access
	Roles    []string
}

// Decide applies the precedence table: the method rule wins when present,
// otherwise the service rule; with neither, callers must be authenticated.
// DenyAll excludes the method and Anonymous lifts the requirement. Every
// other marker requires authentication, carrying roles when it names them.
func Decide(service, method Rule) Decision {
	rule := method
	if rule.Marker == MarkerNone {
		rule = service
	}

	switch rule.Marker {
	case MarkerDenyAll:
		return Decision{Excluded: true}
	case MarkerAnonymous:
		return Decision{Access: Anonymous}
	case MarkerRolesAllowed:
		return Decision{Access: Authenticated, Roles: rule.Roles}
	default:
		return Decision{Access: Authenticated}
	}
}

// RuleOf reads the security directives of one declaration. Two different
// markers on the same declaration are a fatal conflict; repeated rolesAllowed
// lines add up.
func RuleOf(subject string, ds analyze.Directives) (Rule, error) {
	var (
		rule  Rule
		first string
	)

	for _, d := range ds {
		marker, ok := markerDirectives[d.Name]
		if !ok {
			continue
		}

		if rule.Marker != MarkerNone && rule.Marker != marker {
			return Rule{}, diagnostic.Errorf(diagnostic.KindConflictingSecurity, subject,
				"conflicting security directives rpc:%s and rpc:%s", first, d.Name)
		}

		if rule.Marker == MarkerNone {
			first = d.Name
		}

		rule.Marker = marker

		if marker == MarkerRolesAllowed {
			rule.Roles = append(rule.Roles, d.Args...)
		}
	}

	rule.Roles = common.Dedupe(rule.Roles)

	return rule, nil
}

// Classifier resolves decisions for scanned services.
type Classifier struct{}

// Classify returns the decision for method m of svc.
func (Classifier) Classify(svc *analyze.Service, m *analyze.Method) (Decision, error) {
	service, err := RuleOf(svc.QualifiedName(), svc.Decl.Doc.Directives)
	if err != nil {
		return Decision{}, err
	}

	method, err := RuleOf(svc.QualifiedName()+"."+m.Name, m.Doc.Directives)
	if err != nil {
		return Decision{}, err
	}

	return Decide(service, method), nil
}
