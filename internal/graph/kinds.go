package graph

// DeclKind is the closed enumeration of declaration kinds this analyzer
// understands, mapped from Go's declaration forms onto the kind taxonomy
// the mutation passes are written against.
type DeclKind int

const (
	KindUnknown DeclKind = iota
	KindModule
	KindStruct
	KindInterface
	KindExtensionOfStruct
	KindExtensionOfInterface
	KindTypeAlias
	KindGenericTypeParameter
	KindFreeFunction
	KindMethodInstance
	KindMethodPointerReceiver
	KindConstructor
	KindVariableGlobal
	KindVariableLocal
	KindVariableParameter
	KindVariableInstance
	KindEnumCase
)

func (k DeclKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindExtensionOfStruct:
		return "extension-of-struct"
	case KindExtensionOfInterface:
		return "extension-of-interface"
	case KindTypeAlias:
		return "typealias"
	case KindGenericTypeParameter:
		return "generic-type-parameter"
	case KindFreeFunction:
		return "free-function"
	case KindMethodInstance:
		return "method-instance"
	case KindMethodPointerReceiver:
		return "method-pointer-receiver"
	case KindConstructor:
		return "constructor"
	case KindVariableGlobal:
		return "variable-global"
	case KindVariableLocal:
		return "variable-local"
	case KindVariableParameter:
		return "variable-parameter"
	case KindVariableInstance:
		return "variable-instance"
	case KindEnumCase:
		return "enum-case"
	default:
		return "unknown"
	}
}

// ordinal ranks kinds for the dangling-reference tie-break total order
// (see internal/reconcile). Lower ranks first; instance variables (struct
// fields) rank ahead of methods so a field/getter pair declared on the same
// line resolves to the field.
func (k DeclKind) ordinal() int {
	switch k {
	case KindVariableInstance, KindVariableGlobal, KindVariableLocal:
		return 0
	case KindEnumCase:
		return 1
	case KindConstructor:
		return 2
	case KindMethodInstance, KindMethodPointerReceiver:
		return 3
	default:
		return 4
	}
}

// Ordinal exposes the kind's tie-break rank.
func (k DeclKind) Ordinal() int { return k.ordinal() }

// RefKind mirrors DeclKind for the target of a reference.
type RefKind = DeclKind

// RefRole classifies why a reference exists.
type RefRole int

const (
	RolePlainUse RefRole = iota
	RoleInheritedClassType
	RoleRefinedInterfaceType
	RoleVarType
	RoleReturnType
	RoleParameterType
	RoleGenericParameterType
	RoleGenericRequirementType
	RoleVariableInitCall
	RoleFunctionCallMetatypeArgument
)

// Accessibility mirrors Go's two-level export model, kept as a five-step
// ladder for fidelity with the pass pipeline's accessibility cascade (only
// Unexported and Public/Open are actually reachable from Go source; the
// intermediate steps exist so the cascade logic itself needn't special-case
// a two-valued ladder).
type Accessibility int

const (
	AccessPrivate Accessibility = iota
	AccessFileprivate
	AccessInternal
	AccessPackage
	AccessPublic
	AccessOpen
)

func (a Accessibility) String() string {
	switch a {
	case AccessPrivate:
		return "private"
	case AccessFileprivate:
		return "fileprivate"
	case AccessInternal:
		return "internal"
	case AccessPackage:
		return "package"
	case AccessPublic:
		return "public"
	case AccessOpen:
		return "open"
	default:
		return "internal"
	}
}
