package resolver

import (
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wundergraph/cqir/internal/pkg/unsafeparser"
	"github.com/wundergraph/cqir/pkg/cqir"
	"github.com/wundergraph/cqir/pkg/normalization"
	"github.com/wundergraph/cqir/pkg/operationreport"
)

func slotsOf(t *testing.T, source string) []normalization.Slot {
	t.Helper()
	result, err := normalization.Normalize(unsafeparser.ParseDefinition(source))
	require.NoError(t, err)
	return result.Slots
}

func TestFragmentNameParts(t *testing.T) {
	run := func(name, module, property string) {
		t.Run(name, func(t *testing.T) {
			actualModule, actualProperty, err := FragmentNameParts(name)
			require.NoError(t, err)
			assert.Equal(t, module, actualModule)
			assert.Equal(t, property, actualProperty)
		})
	}
	runErr := func(name string) {
		t.Run(name, func(t *testing.T) {
			_, _, err := FragmentNameParts(name)
			assert.True(t, errors.Is(err, operationreport.Sentinel(operationreport.CodeInvalidFragmentName)))
		})
	}

	run("Profile", "Profile", "data")
	run("Profile_user", "Profile", "user")
	run("Profile_user_friends", "Profile", "user_friends")
	run("Profile2_viewer", "Profile2", "viewer")

	runErr("Profile_data")
	runErr("_user")
	runErr("Profile_2user")
	runErr("1Profile")
}

func TestResolve(t *testing.T) {
	t.Run("masked slot with an imported module", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		scope := NewMockScope(ctrl)
		scope.EXPECT().LookupBinding("Profile").Return(BindingImported, true)
		scope.EXPECT().LookupBinding("user").Return(BindingUnknown, false)

		initializers, err := Resolve(slotsOf(t, `query Q { me { ...Profile_user } }`), scope, nil)
		require.NoError(t, err)
		require.Len(t, initializers, 1)
		assert.Equal(t, &FragmentLookup{
			Slot:     "Profile_user",
			Module:   "Profile",
			Property: "user",
		}, initializers[0])
	})
	t.Run("masked slot with a local module checks the container", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		scope := NewMockScope(ctrl)
		scope.EXPECT().LookupBinding("Profile").Return(BindingLocal, true)
		scope.EXPECT().LookupBinding("user").Return(BindingUnknown, false)

		initializers, err := Resolve(slotsOf(t, `query Q { me { ...Profile_user } }`), scope, nil)
		require.NoError(t, err)
		lookup, ok := initializers[0].(*FragmentLookup)
		require.True(t, ok)
		assert.True(t, lookup.CheckContainer)
	})
	t.Run("unmasked slot bound to a local property", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		scope := NewMockScope(ctrl)
		scope.EXPECT().LookupBinding("Profile").Return(BindingUnknown, false)
		scope.EXPECT().LookupBinding("user").Return(BindingLocal, true)

		initializers, err := Resolve(slotsOf(t, `query Q { me { ...Profile_user @relay(mask: false) } }`), scope, nil)
		require.NoError(t, err)
		assert.Equal(t, &FragmentContent{
			Slot:          "Profile_user",
			Module:        "Profile",
			Property:      "user",
			LocalProperty: true,
		}, initializers[0])
	})
	t.Run("masked slot bound only to a property", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		scope := NewMockScope(ctrl)
		scope.EXPECT().LookupBinding("Profile").Return(BindingUnknown, false)
		scope.EXPECT().LookupBinding("user").Return(BindingLocal, true)

		initializers, err := Resolve(slotsOf(t, `query Q { me { ...Profile_user } }`), scope, nil)
		require.NoError(t, err)
		lookup, ok := initializers[0].(*FragmentLookup)
		require.True(t, ok)
		assert.False(t, lookup.CheckContainer)
	})
	t.Run("unbound fragment", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		scope := NewMockScope(ctrl)
		scope.EXPECT().LookupBinding(gomock.Any()).Return(BindingUnknown, false).Times(2)

		_, err := Resolve(slotsOf(t, `query Q { me { ...Profile_user @relay(mask: false) } }`), scope, nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, operationreport.Sentinel(operationreport.CodeUnresolvedFragmentReference)))
		assert.Contains(t, err.Error(), "module `Profile`")
		assert.Contains(t, err.Error(), "local variable `user`")

		var externalErr operationreport.ExternalError
		require.True(t, errors.As(err, &externalErr))
		assert.Equal(t, operationreport.KindScopeResolutionFailure, externalErr.Kind)
	})
	t.Run("invalid fragment name", func(t *testing.T) {
		_, err := Resolve(slotsOf(t, `query Q { me { ...Profile_data } }`), MapScope{"Profile": BindingImported}, nil)
		assert.True(t, errors.Is(err, operationreport.Sentinel(operationreport.CodeInvalidFragmentName)))
	})
	t.Run("arguments", func(t *testing.T) {
		scope := MapScope{"Profile": BindingImported}
		slots := slotsOf(t, `query Q($size: Int, $format: NameFormat) {
			me {
				...Profile_user @arguments(size: $size, format: $format, first: 10)
				...Profile_user
			}
		}`)

		initializers, err := Resolve(slots, scope, []string{"format"})
		require.NoError(t, err)
		require.Len(t, initializers, 2)
		assert.Equal(t, "Profile_user_args1", initializers[0].SlotName())
		assert.Equal(t, "Profile_user", initializers[1].SlotName())

		data, err := cqir.Marshal(initializers[0])
		require.NoError(t, err)
		assert.Equal(t, `{"kind":"FragmentLookup","slot":"Profile_user_args1","module":"Profile","property":"user","checkContainer":false,"arguments":{"kind":"CallValue","callValue":{"size":{"kind":"CallVariable","callVariableName":"size"},"format":{"$var":"format"},"first":10}}}`, string(data))

		data, err = cqir.Marshal(initializers[1])
		require.NoError(t, err)
		assert.Equal(t, `{"kind":"FragmentLookup","slot":"Profile_user","module":"Profile","property":"user","checkContainer":false,"arguments":null}`, string(data))
	})
	t.Run("no slots", func(t *testing.T) {
		initializers, err := Resolve(nil, MapScope{}, nil)
		require.NoError(t, err)
		assert.Empty(t, initializers)
	})
}

func TestFragmentContent_MarshalJSON(t *testing.T) {
	data, err := cqir.Marshal(&FragmentContent{Slot: "A_b", Module: "A", Property: "b"})
	require.NoError(t, err)
	assert.Equal(t, `{"kind":"FragmentContent","slot":"A_b","module":"A","property":"b","localProperty":false}`, string(data))
}

func TestMapScope(t *testing.T) {
	scope := MapScope{"Profile": BindingImported}
	kind, ok := scope.LookupBinding("Profile")
	assert.True(t, ok)
	assert.Equal(t, BindingImported, kind)
	assert.Equal(t, "imported", kind.String())

	_, ok = scope.LookupBinding("Other")
	assert.False(t, ok)
}
