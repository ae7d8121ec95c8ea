package gridfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type MockModule struct {
	installed bool
	order     *[]string
	name      string
}

func (m *MockModule) Install(app *App, commands *Commands) {
	m.installed = true
	if m.order != nil {
		*m.order = append(*m.order, m.name)
	}
}

func TestAppBuilder_Stateless(t *testing.T) {
	app := NewAppBuilder().Build()

	assert.False(t, app.stateful)
	assert.Equal(t, State(0), app.initialState)
	assert.Equal(t, State(0), app.finalState)
}

func TestAppBuilder_UseStates(t *testing.T) {
	app := NewAppBuilder().UseStates(1, 10).Build()

	assert.True(t, app.stateful)
	assert.Equal(t, State(1), app.initialState)
	assert.Equal(t, State(10), app.finalState)
	assert.Len(t, app.systems[Update.Name], 10)
}

func TestAppBuilder_UseModule(t *testing.T) {
	builder := NewAppBuilder()
	module := &MockModule{}
	builder.UseModule(module)

	assert.Len(t, builder.modules, 1)
	assert.False(t, module.installed, "modules are installed on Build")

	builder.Build()
	assert.True(t, module.installed)
}

func TestAppBuilder_Build_WithMultipleModules(t *testing.T) {
	var order []string
	module1 := &MockModule{order: &order, name: "first"}
	module2 := &MockModule{order: &order, name: "second"}

	NewAppBuilder().
		UseModule(module1).
		UseModule(module2).
		Build()

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestAppBuilder_StatesAfterStatelessSystems(t *testing.T) {
	calls := 0
	app := NewAppBuilder().
		UseModule(TimeModule{}).
		Build()
	app.UseSystem(System(func(*Time) { calls++ }).InStage(Update))

	app.UseStates(StateRunning, StateExiting)
	app.Step()

	assert.Equal(t, 1, calls, "stateless systems survive switching to stateful mode")
}
