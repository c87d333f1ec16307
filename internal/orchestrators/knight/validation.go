package knight

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
)

func attributeNames() []string {
	names := entities.AttributeNames()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = name.String()
	}
	return out
}

func validateCreateKnight(input *CreateKnightInput, now time.Time) error {
	vb := errors.NewValidationBuilder()

	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateMaxLength("name", input.Name, MaxNameLength, vb)
	validateNickname(input.Nickname, vb)

	if input.Birthday.IsZero() {
		vb.RequiredField("birthday")
	} else if input.Birthday.After(now) {
		vb.Field("birthday", "must not be in the future")
	}

	if len(input.Weapons) == 0 {
		vb.Field("weapons", "must contain at least 1 weapon")
	}
	for i, weapon := range input.Weapons {
		prefix := fmt.Sprintf("weapons[%d]", i)
		errors.ValidateRequired(prefix+".name", weapon.Name, vb)
		errors.ValidateMaxLength(prefix+".name", weapon.Name, MaxWeaponNameLength, vb)
		errors.ValidateRange(prefix+".mod", weapon.Mod, MinWeaponMod, MaxWeaponMod, vb)
		errors.ValidateEnum(prefix+".attr", string(weapon.Attr), attributeNames(), vb)
	}

	attrs := input.Attributes
	for _, name := range entities.AttributeNames() {
		errors.ValidateRange("attributes."+name.String(), attrs.Score(name), MinAttributeScore, MaxAttributeScore, vb)
	}

	errors.ValidateEnum("keyAttribute", string(input.KeyAttribute), attributeNames(), vb)

	return vb.Build()
}

func validateUpdateKnight(input *UpdateKnightInput) error {
	if input.Nickname == nil {
		return nil
	}

	vb := errors.NewValidationBuilder()
	validateNickname(*input.Nickname, vb)
	return vb.Build()
}

func validateNickname(nickname string, vb *errors.ValidationBuilder) {
	errors.ValidateRequired("nickname", nickname, vb)
	errors.ValidateMaxLength("nickname", nickname, MaxNicknameLength, vb)
}
