// Package request содержит тела входящих запросов, их декодирование и проверку.
package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/zadania-app/task-manager/internal/http/response"
	"github.com/zadania-app/task-manager/internal/lib/apperr"
	"github.com/zadania-app/task-manager/internal/models"
)

// MsgInvalidBody отдаётся, если тело запроса не является корректным JSON.
const MsgInvalidBody = "Nieprawidłowe dane żądania"

// Credentials — тело запросов регистрации и входа. Наличие полей
// проверяет сервис аутентификации, чтобы сообщения совпадали для обоих путей.
type Credentials struct {
	Login    string `json:"login" example:"jan"`
	Password string `json:"password" example:"tajne123"`
}

// Priority принимает число, строку с числом, пустую строку или null.
// Браузерный клиент присылает значение поля формы как есть.
// Значение должно помещаться в INTEGER хранилища (int32).
type Priority struct {
	Value *int
}

// UnmarshalJSON реализует json.Unmarshaler.
func (p *Priority) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		p.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			p.Value = nil
			return nil
		}
	} else {
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return fmt.Errorf("priorytet: %w", err)
		}
		raw = num.String()
	}

	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fmt.Errorf("priorytet: %w", err)
	}
	v := int(n)
	p.Value = &v
	return nil
}

// Task — тело запросов создания и обновления задачи.
type Task struct {
	Tytul     string   `json:"tytul" example:"Zrobić zakupy"`
	Opis      *string  `json:"opis" example:"Mleko, chleb"`
	Termin    *string  `json:"termin" validate:"omitempty,datetime=2006-01-02" example:"2025-03-14" swaggertype:"string"`
	Priorytet Priority `json:"priorytet" swaggertype:"integer" example:"2"`
	Status    *string  `json:"status" example:"todo"`
}

// Fields переводит тело запроса в поля задачи. Пустой термин считается
// отсутствующим. Формат термина должен быть проверен до вызова.
func (t Task) Fields() (models.TaskFields, error) {
	fields := models.TaskFields{
		Title:       t.Tytul,
		Description: t.Opis,
		Priority:    t.Priorytet.Value,
		Status:      t.Status,
	}
	if t.Termin != nil && *t.Termin != "" {
		due, err := time.Parse(models.DateLayout, *t.Termin)
		if err != nil {
			return models.TaskFields{}, fmt.Errorf("termin: %w", err)
		}
		fields.DueDate = &due
	}
	return fields, nil
}

// Validator проверяет тела запросов. В сообщениях используются имена полей из JSON.
type Validator struct {
	validate *validator.Validate
}

// NewValidator создаёт Validator.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// В v9 нет встроенного datetime. Пустая строка допустима:
	// omitempty не пропускает ненулевой указатель.
	_ = v.RegisterValidation("datetime", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		_, err := time.Parse(fl.Param(), value)
		return err == nil
	})
	return &Validator{validate: v}
}

// Struct проверяет структуру и возвращает ошибку вида ErrValidation.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return response.ValidationError(verrs)
	}
	return err
}

// Decode читает JSON-тело запроса в dst. Пустое тело даёт нулевое значение,
// как у клиента, не приславшего ни одного поля.
func Decode(r *http.Request, dst any) error {
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperr.Validation(MsgInvalidBody)
	}
	return nil
}

// TaskID возвращает id задачи из параметра маршрута {id}.
// ok == false, если параметр не является положительным целым числом:
// такой задачи не может существовать.
func TaskID(r *http.Request) (id int64, ok bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
