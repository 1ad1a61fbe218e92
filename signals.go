package arbor

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for tree building events.
var (
	SignalDefinitionRegistered = capitan.NewSignal("tree.definition.registered", "Root rule registered on a definition")
	SignalSerializeStart       = capitan.NewSignal("tree.serialize.start", "Serialize operation beginning")
	SignalSerializeComplete    = capitan.NewSignal("tree.serialize.complete", "Serialize operation finished")
	SignalEncodeComplete       = capitan.NewSignal("tree.encode.complete", "Encode operation finished")
)

// Keys for typed event data.
var (
	KeyDefinition  = capitan.NewStringKey("definition")
	KeyRootKind    = capitan.NewStringKey("root_kind")
	KeyTypeName    = capitan.NewStringKey("type_name")
	KeyContentType = capitan.NewStringKey("content_type")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
)

// emitDefinitionRegistered emits an event when a root rule is set.
func emitDefinitionRegistered(ctx context.Context, name, kind string) {
	capitan.Emit(ctx, SignalDefinitionRegistered,
		KeyDefinition.Field(name),
		KeyRootKind.Field(kind),
	)
}

// emitSerializeStart emits an event when serialization begins.
func emitSerializeStart(ctx context.Context, name, kind, typeName string) {
	capitan.Emit(ctx, SignalSerializeStart,
		KeyDefinition.Field(name),
		KeyRootKind.Field(kind),
		KeyTypeName.Field(typeName),
	)
}

// emitSerializeComplete emits an event when serialization finishes.
func emitSerializeComplete(ctx context.Context, name, kind, typeName string, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyDefinition.Field(name),
		KeyRootKind.Field(kind),
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSerializeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSerializeComplete, fields...)
	}
}

// emitEncodeComplete emits an event when a tree has been marshaled.
func emitEncodeComplete(ctx context.Context, name, contentType string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyDefinition.Field(name),
		KeyContentType.Field(contentType),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalEncodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalEncodeComplete, fields...)
	}
}
