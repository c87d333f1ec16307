package v1

import (
	"fmt"
	"time"

	"github.com/KirkDiggler/knight-api/internal/engine"
	"github.com/KirkDiggler/knight-api/internal/entities"
	"github.com/KirkDiggler/knight-api/internal/errors"
	"github.com/KirkDiggler/knight-api/internal/orchestrators/knight"
)

// WeaponBody is a weapon as sent and returned over HTTP
type WeaponBody struct {
	Name     string `json:"name"`
	Mod      int    `json:"mod"`
	Attr     string `json:"attr"`
	Equipped bool   `json:"equipped"`
}

// AttributesRequest carries the six scores. Pointers detect missing fields.
type AttributesRequest struct {
	Strength     *int `json:"strength"`
	Dexterity    *int `json:"dexterity"`
	Constitution *int `json:"constitution"`
	Intelligence *int `json:"intelligence"`
	Wisdom       *int `json:"wisdom"`
	Charisma     *int `json:"charisma"`
}

// CreateKnightRequest is the body of POST /knights
type CreateKnightRequest struct {
	Name         string             `json:"name"`
	Nickname     string             `json:"nickname"`
	Birthday     string             `json:"birthday"`
	Weapons      []WeaponBody       `json:"weapons"`
	Attributes   *AttributesRequest `json:"attributes"`
	KeyAttribute string             `json:"keyAttribute"`
}

// UpdateKnightRequest is the body of PATCH /knights/{id}
type UpdateKnightRequest struct {
	Nickname *string `json:"nickname"`
}

// KnightResponse is a knight with its derived fields
type KnightResponse struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Nickname     string              `json:"nickname"`
	Birthday     string              `json:"birthday"`
	Age          int                 `json:"age"`
	Weapons      []WeaponBody        `json:"weapons"`
	Attributes   entities.Attributes `json:"attributes"`
	KeyAttribute string              `json:"keyAttribute"`
	Attack       int                 `json:"attack"`
	Exp          int                 `json:"exp"`
	IsDeleted    bool                `json:"isDeleted"`
	DeletedAt    *time.Time          `json:"deletedAt"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// parseBirthday accepts a calendar date or an RFC 3339 timestamp. A
// timestamp keeps the date written in its own offset.
func parseBirthday(raw string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (req *CreateKnightRequest) toInput(now time.Time) (*knight.CreateKnightInput, error) {
	vb := errors.NewValidationBuilder()

	var birthday time.Time
	if req.Birthday == "" {
		vb.RequiredField("birthday")
	} else if parsed, err := parseBirthday(req.Birthday); err != nil {
		vb.Field("birthday", "must be a date formatted as YYYY-MM-DD")
	} else if parsed.After(now) {
		vb.Field("birthday", "must not be in the future")
	} else {
		birthday = parsed
	}

	var attributes entities.Attributes
	if req.Attributes == nil {
		vb.RequiredField("attributes")
	} else {
		attributes = req.Attributes.toEntity(vb)
	}

	if err := vb.Build(); err != nil {
		return nil, err
	}

	weapons := make([]entities.Weapon, len(req.Weapons))
	for i, w := range req.Weapons {
		weapons[i] = entities.Weapon{
			Name:     w.Name,
			Mod:      w.Mod,
			Attr:     entities.AttributeName(w.Attr),
			Equipped: w.Equipped,
		}
	}

	return &knight.CreateKnightInput{
		Name:         req.Name,
		Nickname:     req.Nickname,
		Birthday:     birthday,
		Weapons:      weapons,
		Attributes:   attributes,
		KeyAttribute: entities.AttributeName(req.KeyAttribute),
	}, nil
}

func (a *AttributesRequest) toEntity(vb *errors.ValidationBuilder) entities.Attributes {
	score := func(name entities.AttributeName, v *int) int {
		if v == nil {
			vb.RequiredField(fmt.Sprintf("attributes.%s", name))
			return 0
		}
		return *v
	}

	return entities.Attributes{
		Strength:     score(entities.AttributeStrength, a.Strength),
		Dexterity:    score(entities.AttributeDexterity, a.Dexterity),
		Constitution: score(entities.AttributeConstitution, a.Constitution),
		Intelligence: score(entities.AttributeIntelligence, a.Intelligence),
		Wisdom:       score(entities.AttributeWisdom, a.Wisdom),
		Charisma:     score(entities.AttributeCharisma, a.Charisma),
	}
}

func (req *UpdateKnightRequest) validate() error {
	if req.Nickname == nil {
		return nil
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("nickname", *req.Nickname, vb)
	errors.ValidateMaxLength("nickname", *req.Nickname, knight.MaxNicknameLength, vb)
	return vb.Build()
}

func toKnightResponse(view *engine.KnightView) *KnightResponse {
	weapons := make([]WeaponBody, len(view.Weapons))
	for i, w := range view.Weapons {
		weapons[i] = WeaponBody{
			Name:     w.Name,
			Mod:      w.Mod,
			Attr:     string(w.Attr),
			Equipped: w.Equipped,
		}
	}

	return &KnightResponse{
		ID:           view.ID,
		Name:         view.Name,
		Nickname:     view.Nickname,
		Birthday:     view.Birthday.Format(time.DateOnly),
		Age:          view.Age,
		Weapons:      weapons,
		Attributes:   view.Attributes,
		KeyAttribute: string(view.KeyAttribute),
		Attack:       view.Attack,
		Exp:          view.Exp,
		IsDeleted:    view.IsDeleted,
		DeletedAt:    view.DeletedAt,
	}
}
