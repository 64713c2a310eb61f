// Package viz is the terminal flight view.
//
// [Picker] lists the known vehicles; [Model] flies the chosen ones inside a
// Bubble Tea program. The view shows a braille top-down map with every
// vehicle's trail, a wireframe of the tracked vehicle's attitude, and a
// panel with position, Euler angles, speed, the six control axes and an
// altitude trace.
//
// # Key Bindings
//
//	↑/↓     throttle          W/S  roll
//	←/→     lateral thrust    Q/E  pitch
//	R/F     ascend/descend    A/D  yaw
//	Shift+C reset             -/=  scale
//	I, Tab  next vehicle      [/]  map zoom
//	Space   pause             Esc  quit
package viz
