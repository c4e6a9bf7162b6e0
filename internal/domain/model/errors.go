package model

import (
	"errors"
	"fmt"
)

// ErrInvalidSource возвращается при неизвестном значении параметра source.
var ErrInvalidSource = errors.New("invalid source")

// DegenerateGeometryError — терминальная ошибка вычисления: площадь scope
// нулевая, геометрия некорректна либо ни одна зона не пересекает границу.
// Повтор без изменения входных данных бессмысленен.
type DegenerateGeometryError struct {
	Scope  ScopeInfo
	Reason string
}

func (e *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("degenerate geometry for %s %d: %s", e.Scope.Kind, e.Scope.ID, e.Reason)
}

// UnresolvedScopeError — проект или территория не найдены источником данных.
type UnresolvedScopeError struct {
	Kind ScopeKind
	ID   int64
}

func (e *UnresolvedScopeError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

// MalformedZoneError — геометрия зоны не прошла базовую проверку корректности.
// Зона исключается из агрегации, результат помечается как деградированный.
type MalformedZoneError struct {
	ZoneID int64
	Reason string
}

func (e *MalformedZoneError) Error() string {
	return fmt.Sprintf("malformed zone %d: %s", e.ZoneID, e.Reason)
}
