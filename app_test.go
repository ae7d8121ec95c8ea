package gridfx

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockResource1 struct {
	name string
}
type MockResource2 struct {
	name string
}

func NewMockResource1(name string) *MockResource1 {
	return &MockResource1{name: name}
}
func NewMockResource2(name string) *MockResource2 {
	return &MockResource2{name: name}
}

type callLog struct {
	calls []string
}

func (l *callLog) record(name string) func(*callLog) {
	return func(log *callLog) { log.calls = append(log.calls, name) }
}

func TestApp_changeState(t *testing.T) {
	app := &App{
		stateful:     true,
		initialState: 1,
		state:        1,
		finalState:   2,
	}

	app.changeState(2)
	assert.Equal(t, State(2), app.nextState)
	assert.True(t, app.stateTransitioning)

	app.executeChangeState(2)
	assert.Equal(t, State(2), app.state)
}

func TestApp_addResources(t *testing.T) {
	app := &App{
		resources: make(map[reflect.Type]any),
	}

	resource1 := NewMockResource1("Resource1")
	app.addResources(resource1)
	assert.Contains(t, app.resources, reflect.TypeOf(resource1).Elem(), "Resource1 should be in resources map.")

	require.PanicsWithValue(t, fmt.Sprintf("%s is already in resources", reflect.TypeOf(resource1)), func() {
		app.addResources(resource1)
	})

	resource2 := NewMockResource2("Resource2")
	app.addResources(resource2)
	assert.Contains(t, app.resources, reflect.TypeOf(resource2).Elem(), "Resource2 should be in resources map.")

	got, ok := Resource[MockResource2](app)
	require.True(t, ok)
	assert.Same(t, resource2, got)
}

func TestApp_StepRunsStatePhasesInOrder(t *testing.T) {
	log := &callLog{}
	app := NewApp().UseStates(StateRunning, StateExiting)
	app.addResources(log)

	app.UseSystem(System(log.record("stateless")).InStage(Prelude))
	app.UseSystem(System(log.record("enter running")).InStage(Update).InState(OnEnter(StateRunning)))
	app.UseSystem(System(log.record("execute running")).InStage(Update).InState(OnExecute(StateRunning)))
	app.UseSystem(System(log.record("exit running")).InStage(Finale).InState(OnExit(StateRunning)))
	app.UseSystem(System(log.record("enter exiting")).InStage(Update).InState(OnEnter(StateExiting)))
	app.UseSystem(System(log.record("exit exiting")).InStage(Finale).InState(OnExit(StateExiting)))

	assert.True(t, app.Step())
	assert.Equal(t, []string{"enter running", "stateless", "execute running"}, log.calls)

	log.calls = nil
	app.Commands().ChangeState(StateExiting)
	assert.False(t, app.Step())
	assert.Equal(t, []string{"stateless", "execute running", "exit running", "enter exiting", "exit exiting"}, log.calls)
	assert.Equal(t, StateExiting, app.State())
}

func TestApp_RunStopsInFinalState(t *testing.T) {
	frames := 0
	app := NewApp().UseStates(StateRunning, StateExiting)
	app.UseSystem(System(func(cmd *Commands) {
		frames++
		if frames == 3 {
			cmd.ChangeState(StateExiting)
		}
	}).InStage(Update).InState(OnExecute(StateRunning)))

	app.Run()
	assert.Equal(t, 3, frames)
}

func TestApp_StagesRunInOrder(t *testing.T) {
	log := &callLog{}
	app := NewApp()
	app.addResources(log)

	custom := Stage{Name: "Custom"}
	app.UseStage(custom, AfterStage(Update))

	app.UseSystem(System(log.record("render")).InStage(Render))
	app.UseSystem(System(log.record("custom")).InStage(custom))
	app.UseSystem(System(log.record("update")).InStage(Update))
	app.UseSystem(System(log.record("prelude")).InStage(Prelude))

	app.Step()
	assert.Equal(t, []string{"prelude", "update", "custom", "render"}, log.calls)

	assert.Panics(t, func() {
		app.UseStage(Stage{Name: "Orphan"}, BeforeStage(Stage{Name: "Missing"}))
	})
}

func TestApp_StatefulSystemInStatelessApp(t *testing.T) {
	app := NewApp()
	assert.PanicsWithValue(t, "Trying to use a stateful system in a stateless app.", func() {
		app.UseSystem(System(func() {}).InState(OnExecute(StateRunning)))
	})
}

func TestApp_UnresolvedDependencyPanics(t *testing.T) {
	app := NewApp()
	app.UseSystem(System(func(*MockResource1) {}))
	assert.Panics(t, func() { app.Step() })
}

func TestApp_LoggerDefaultsToNop(t *testing.T) {
	app := NewApp()
	require.NotNil(t, app.Logger())
	assert.False(t, app.Logger().DebugEnabled())

	var nilApp *App
	assert.NotNil(t, nilApp.Logger())
}
