package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Семантические
	SemaInfo                     Code = 3000
	SemaError                    Code = 3001
	SemaDuplicateSymbol          Code = 3002
	SemaDuplicateOverload        Code = 3003
	SemaUnresolvedSymbol         Code = 3004
	SemaBreakOutsideLoop         Code = 3005
	SemaContinueOutsideLoop      Code = 3006
	SemaReturnOutsideFunction    Code = 3007
	SemaReturnValueInInitializer Code = 3008
	SemaMissingReturn            Code = 3009
	SemaSelfReference            Code = 3010
	SemaCircularReference        Code = 3011
	SemaFieldBeforeClass         Code = 3012
	SemaInstanceFromStatic       Code = 3013
	SemaThisOutsideMethod        Code = 3014
	SemaSuperOutsideClass        Code = 3015
	SemaSuperInRootClass         Code = 3016
	SemaSuperOutsideMethod       Code = 3017
	SemaSuperNotFirst            Code = 3018
	SemaSuperOutsideConstructor  Code = 3019
	SemaSuperMemberNotFound      Code = 3020
	SemaStaticConstructor        Code = 3021
	SemaInheritanceCycle         Code = 3022
	SemaOverrideStaticMismatch   Code = 3023
	SemaOverrideReturnMismatch   Code = 3024
	SemaAssignToNonVariable      Code = 3025
	SemaRetypeVariable           Code = 3026
	SemaUnknownClass             Code = 3027
	SemaNestedClass              Code = 3028
	SemaInvariant                Code = 3099

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001

	// I/O
	IOLoadFileError    Code = 4001
	IOMalformedProgram Code = 4002
	IOBadIdentifier    Code = 4003

	// Project
	ProjInfo            Code = 5000
	ProjBadManifest     Code = 5001
	ProjVersionMismatch Code = 5002
)

var codeDescription = map[Code]string{
	UnknownCode:                  "Unknown error",
	SemaInfo:                     "Semantic information",
	SemaError:                    "Semantic error",
	SemaDuplicateSymbol:          "Duplicate symbol",
	SemaDuplicateOverload:        "Duplicate overload",
	SemaUnresolvedSymbol:         "Unresolved symbol",
	SemaBreakOutsideLoop:         "Break outside of loop",
	SemaContinueOutsideLoop:      "Continue outside of loop",
	SemaReturnOutsideFunction:    "Return outside of function",
	SemaReturnValueInInitializer: "Return value in constructor",
	SemaMissingReturn:            "Missing return",
	SemaSelfReference:            "Variable used in its own declaration",
	SemaCircularReference:        "Circular reference",
	SemaFieldBeforeClass:         "Field used before class is defined",
	SemaInstanceFromStatic:       "Instance member used from static context",
	SemaThisOutsideMethod:        "'this' outside of method",
	SemaSuperOutsideClass:        "'super' outside of class",
	SemaSuperInRootClass:         "'super' in class without superclass",
	SemaSuperOutsideMethod:       "'super' outside of method",
	SemaSuperNotFirst:            "'super' call is not the first statement",
	SemaSuperOutsideConstructor:  "'super' call outside of constructor",
	SemaSuperMemberNotFound:      "Superclass member not found",
	SemaStaticConstructor:        "Static constructor",
	SemaInheritanceCycle:         "Inheritance cycle",
	SemaOverrideStaticMismatch:   "Override changes static modifier",
	SemaOverrideReturnMismatch:   "Override changes return type",
	SemaAssignToNonVariable:      "Assignment to non-variable",
	SemaRetypeVariable:           "Variable redeclared with a type",
	SemaUnknownClass:             "Unknown class",
	SemaNestedClass:              "Class declaration must be global",
	SemaInvariant:                "Symbol table invariant violated",
	IOLoadFileError:              "I/O load file error",
	IOMalformedProgram:           "Malformed program file",
	IOBadIdentifier:              "Invalid identifier",
	ProjInfo:                     "Project information",
	ProjBadManifest:              "Invalid project manifest",
	ProjVersionMismatch:          "Analyzer version does not satisfy manifest",
	ObsInfo:                      "Observability information",
	ObsTimings:                   "Phase timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
